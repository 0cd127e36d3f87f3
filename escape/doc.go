// Package escape builds shell-safe command lines from argument vectors.
//
// Three escaping schemes are provided:
//
//  1. Args - process-start escaping following the C runtime's parsing
//     rules. This is what a child process's own argv reconstruction
//     expects, and it round-trips any argument vector exactly.
//  2. CmdArgs - cmd.exe escaping for command lines that travel through
//     `cmd /S /C "..."`. Caret-escaped so cmd metacharacters are inert.
//  3. ShellArgs - POSIX sh single-quote escaping, for display and for
//     command lines handed to a Unix shell.
//
// All functions are pure and total: well-formed input strings never fail
// to escape.
package escape
