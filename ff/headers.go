/*
 * headers.go, part of mdprep
 *
 *
 * Copyright 2024 Raul Mera  <rmeraa{at}academicos(dot)uta(dot)cl>
 *
 *
 *  This program is free software; you can redistribute it and/or modify
 *  it under the terms of the GNU Lesser General Public License as published by
 *  the Free Software Foundation; either version 3 of the License, or
 *  (at your option) any later version.
 *
 *  This program is distributed in the hope that it will be useful,
 *  but WITHOUT ANY WARRANTY; without even the implied warranty of
 *  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 *  GNU General Public License for more details.
 *
 *  You should have received a copy of the GNU General Public License along
 *  with this program; if not, write to the Free Software Foundation, Inc.,
 *  51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 *
 *
 */

package ff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Utility functions

func qerr(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func parsefloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	qerr(err)
	return f
}

func fi(s string) []string { return strings.Fields(s) }

func sf(format string, a ...any) string { return fmt.Sprintf(format, a...) }

// Returns a string without gromacs comments (sequences starting with ';'),
// trailing and leading spaces, tabs and newlines
func cleanString(s string) string {
	f := strings.Split(s, ";")[0]
	return strings.Trim(f, "\r\n\t ")
}

type topHeader struct {
	wany     *regexp.Regexp
	patterns map[string]*regexp.Regexp
}

func newTopHeader() *topHeader {
	T := new(topHeader)
	T.wany = regexp.MustCompile(`^\[\p{Zs}*(\S+)\p{Zs}*\]$`)
	T.patterns = map[string]*regexp.Regexp{
		"defaults":      regexp.MustCompile(`\[\p{Zs}*defaults\p{Zs}*\]`),
		"atomtypes":     regexp.MustCompile(`\[\p{Zs}*atomtypes\p{Zs}*\]`),
		"bondtypes":     regexp.MustCompile(`\[\p{Zs}*bondtypes\p{Zs}*\]`),
		"angletypes":    regexp.MustCompile(`\[\p{Zs}*angletypes\p{Zs}*\]`),
		"dihedraltypes": regexp.MustCompile(`\[\p{Zs}*dihedraltypes\p{Zs}*\]`),
		"impropertypes": regexp.MustCompile(`\[\p{Zs}*impropertypes\p{Zs}*\]`),
		"atoms":         regexp.MustCompile(`\[\p{Zs}*atoms\p{Zs}*\]`),
	}
	return T
}

// Returns true if the line is a Gromacs header. It discards comments.
func (T *topHeader) Is(line string) bool {
	return T.wany.MatchString(cleanString(line))
}

// Returns a string indicating which of the known headers the line is,
// "other" for unknown headers or an empty string if the line is not a header.
func (T *topHeader) Which(line string) string {
	line = cleanString(line)
	if !T.wany.MatchString(line) {
		return ""
	}
	for k, v := range T.patterns {
		if v.MatchString(line) {
			return k
		}
	}
	return "other"
}

// Name returns the text between brackets of a header line.
func (T *topHeader) Name(line string) string {
	m := T.wany.FindStringSubmatch(cleanString(line))
	if m == nil {
		return ""
	}
	return m[1]
}

// StringReader is what the parameter readers read from, i.e. a *bufio.Reader.
type StringReader interface {
	ReadString(byte) (string, error)
}
