// Package rename moves a PDF to its confirmed name without ever clobbering
// an existing file.
//
// The target always lives in the source's directory. Before anything is
// touched the Executor checks that:
//   - the target is a bare file name (no directory parts)
//   - the source exists and is a regular file
//   - nothing already occupies the target
//
// On Linux the move itself is renameat2(RENAME_NOREPLACE), so a file that
// appears between the check and the move is still not overwritten. Other
// platforms rely on the pre-flight check.
//
// # Backups
//
// With Options.Backup set, the original is first copied to <source>.bak:
//
//	exec := rename.NewExecutor(rename.Options{Backup: true}, logger)
//	newPath, err := exec.Rename("/papers/1706.03762.pdf", "vaswani-2017-attention-is-all-you-need.pdf")
package rename
