// elasm: a de Bruijn graph assembler for sequencing reads.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elasm/blob/master/LICENSE.txt>.

package internal

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
)

// Directory returns the names of the files in the given directory,
// sorted. If file is not a directory, it returns its base name.
func Directory(file string) (files []string, err error) {
	info, err := os.Stat(file)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{filepath.Base(file)}, nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer func() {
		nerr := f.Close()
		if err == nil {
			err = nerr
		}
	}()
	if files, err = f.Readdirnames(0); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// FullPathname returns filename relative to the working directory if
// it is not absolute.
func FullPathname(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		return filename, nil
	}
	wd, err := os.Getwd()
	return filepath.Join(wd, filename), err
}

// FileOpen opens a file for reading, with "-" and "/dev/stdin" denoting
// standard input.
func FileOpen(filename string) (*os.File, error) {
	switch filename {
	case "-", "/dev/stdin":
		return os.Stdin, nil
	default:
		return os.Open(filename)
	}
}

// FileCreate creates a file for writing, with "-" and "/dev/stdout"
// denoting standard output.
func FileCreate(filename string) (*os.File, error) {
	switch filename {
	case "-", "/dev/stdout":
		return os.Stdout, nil
	default:
		return os.Create(filename)
	}
}

// Close is c.Close() with panics in place of errors. Standard input and
// output are left open.
func Close(c io.Closer) {
	if c == os.Stdin || c == os.Stdout {
		return
	}
	if err := c.Close(); err != nil {
		log.Panic(err)
	}
}

// MkdirAll is os.MkdirAll with panics in place of errors.
func MkdirAll(path string, perm os.FileMode) {
	if err := os.MkdirAll(path, perm); err != nil {
		log.Panic(err)
	}
}
