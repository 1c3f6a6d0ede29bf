/*
 * handy.go, part of mdprep.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chem

import (
	"errors"
	"fmt"
	"strings"
)

//Kinds of fatal errors. Errors returned by this module wrap one of these, when
//applicable, so they can be checked with errors.Is.
var (
	ErrMissingType        = errors.New("atom lacks a force-field type")
	ErrMissingBondedParam = errors.New("missing bonded parameter")
	ErrMissingFFSet       = errors.New("missing force-field parameter set")
	ErrMissingChi         = errors.New("missing side-chain torsion")
	ErrMissingResidue     = errors.New("atom without residue")
)

// CError is the error type used in the chem package and its relatives. It
// carries a message, the kind of error and a decoration stack.
type CError struct {
	msg  string
	kind error
	deco []string
}

// NewError returns a CError of the given kind (which can be nil), decorated with the caller,
// and with a message built from format and args.
func NewError(kind error, caller, format string, args ...any) CError {
	e := CError{msg: fmt.Sprintf(format, args...), kind: kind}
	if caller != "" {
		e.deco = []string{caller}
	}
	return e
}

// Error returns a string with an error message.
func (err CError) Error() string {
	if err.kind != nil {
		return fmt.Sprintf("%s: %s", err.kind.Error(), err.msg)
	}
	return err.msg
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Unwrap returns the kind of error.
func (err CError) Unwrap() error {
	return err.kind
}

// Stack returns the decoration of the error as a single string, innermost caller first.
func (err CError) Stack() string {
	return strings.Join(err.deco, " <- ")
}

// ErrDecorate decorates the error with the caller's name, if the error
// implements Error, and returns it. Other errors are wrapped with the
// caller's name.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e CError
	if errors.As(err, &e) {
		e.deco = e.Decorate(caller)
		return e
	}
	return fmt.Errorf("%s: %w", caller, err)
}

// IsInInt returns true if test is in container, false otherwise.
func IsInInt(container []int, test int) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
