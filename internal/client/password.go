// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalPassword reads the password from a terminal without echo. When
// in is not a terminal, one line is read from it instead.
type TerminalPassword struct {
	in  *os.File
	out io.Writer
}

// NewTerminalPassword returns a reader prompting on out and reading from in.
func NewTerminalPassword(in *os.File, out io.Writer) *TerminalPassword {
	return &TerminalPassword{in: in, out: out}
}

// ReadPassword implements [PasswordReader].
func (p *TerminalPassword) ReadPassword(prompt string) ([]byte, error) {
	fd := int(p.in.Fd())

	if !term.IsTerminal(fd) {
		return readLine(p.in)
	}

	fmt.Fprint(p.out, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}

	return password, nil
}

func readLine(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadBytes('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		return nil, fmt.Errorf("read password: %w", err)
	}

	password := bytes.TrimRight(line, "\r\n")
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}

	return password, nil
}
