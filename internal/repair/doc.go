// Package repair fills missing and empty translations of a target language
// directory from a source language tree.
//
// Both commands that write translations run through Engine.Run and differ
// only in their Policy: Translate creates the target directory and
// translates every source key from scratch, Repair works on an existing
// target directory and only fills keys that are missing or empty. Runs are
// idempotent with a deterministic translator: a second Repair run neither
// calls the translator nor writes any file.
package repair
