// Package app runs one paper rename from start to finish:
//
//  1. check the input is an existing .pdf file
//  2. pick a model
//  3. extract metadata and format a proposal
//  4. let the user accept, edit or cancel
//  5. rename the file
//
// Each step is an interface on Deps so tests can swap the backend, the
// terminal and the filesystem independently. New wires the real ones.
package app
