// Package selector decides which Ollama model handles a request.
//
// The policy lives in Choose, a pure function over three inputs:
//
//  1. a model explicitly requested by the user, used as-is
//  2. otherwise the first model already loaded in memory (/api/ps)
//  3. otherwise the first installed model (/api/tags)
//
// "First" means lexicographically smallest, so the pick is stable no matter
// how the backend orders its lists. Select is the thin I/O shell that asks a
// Lister for the lists and hands them to Choose.
//
// # Basic Usage
//
//	choice, err := selector.Select(ctx, "", ollamaClient, logger)
//	if err != nil {
//	    // NoModelAvailable or BackendUnreachable, both carry a remedy
//	}
//	fmt.Println(choice.Name, choice.Origin)
package selector
