// Package manifest records which generated file fills which pointer role,
// together with a content id per file so installs can be verified offline.
//
// The encoding is line based:
//
//	# style modern_black
//	Arrow	arrow.cur	1234	bafkrei...
package manifest

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/rook-computer/cursorgen/internal/cursorerr"
	"github.com/rook-computer/cursorgen/internal/generate"
)

// FileName is the name the manifest is stored under next to the cursors.
const FileName = "manifest.txt"

const stylePrefix = "# style "

type Entry struct {
	Role string
	File string
	Size int
	CID  string
}

type Manifest struct {
	Style   string
	Entries []Entry
}

// ContentID returns the CIDv1 (raw codec, sha2-256) of data.
func ContentID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// Build lists every successful entry of batch in catalog order.
func Build(batch *generate.Batch) (Manifest, error) {
	m := Manifest{Style: string(batch.Style)}
	for _, r := range batch.Results {
		if r.Err != nil {
			continue
		}
		id, err := ContentID(r.Data)
		if err != nil {
			return Manifest{}, cursorerr.Wrap(cursorerr.KindEncode, err, "content id for %s", r.Entry.File)
		}
		m.Entries = append(m.Entries, Entry{Role: r.Entry.Role, File: r.Entry.File, Size: len(r.Data), CID: id.String()})
	}
	return m, nil
}

// Encode renders the manifest in its line format.
func (m Manifest) Encode() []byte {
	var buf bytes.Buffer
	buf.WriteString(stylePrefix + m.Style + "\n")
	for _, e := range m.Entries {
		fmt.Fprintf(&buf, "%s\t%s\t%d\t%s\n", e.Role, e.File, e.Size, e.CID)
	}
	return buf.Bytes()
}

// Parse reads a manifest written by Encode.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if line == 1 {
			if !strings.HasPrefix(text, stylePrefix) {
				return Manifest{}, cursorerr.New(cursorerr.KindDecode, "manifest line 1: missing %q header", strings.TrimSpace(stylePrefix))
			}
			m.Style = strings.TrimPrefix(text, stylePrefix)
			continue
		}
		if text == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != 4 {
			return Manifest{}, cursorerr.New(cursorerr.KindDecode, "manifest line %d: %d fields, want 4", line, len(fields))
		}
		size, err := strconv.Atoi(fields[2])
		if err != nil || size < 0 {
			return Manifest{}, cursorerr.New(cursorerr.KindDecode, "manifest line %d: bad size %q", line, fields[2])
		}
		if _, err := cid.Decode(fields[3]); err != nil {
			return Manifest{}, cursorerr.Wrap(cursorerr.KindDecode, err, "manifest line %d: bad content id", line)
		}
		m.Entries = append(m.Entries, Entry{Role: fields[0], File: fields[1], Size: size, CID: fields[3]})
	}
	if err := sc.Err(); err != nil {
		return Manifest{}, cursorerr.Wrap(cursorerr.KindDecode, err, "read manifest")
	}
	if line == 0 {
		return Manifest{}, cursorerr.New(cursorerr.KindDecode, "empty manifest")
	}
	return m, nil
}

// Problem describes one file that does not match the manifest.
type Problem struct {
	File   string
	Reason string
}

func (p Problem) String() string { return p.File + ": " + p.Reason }

// Verify checks files against the manifest and returns every mismatch.
// Files not named by the manifest are ignored.
func (m Manifest) Verify(files map[string][]byte) []Problem {
	var problems []Problem
	for _, e := range m.Entries {
		data, ok := files[e.File]
		if !ok {
			problems = append(problems, Problem{File: e.File, Reason: "missing"})
			continue
		}
		if len(data) != e.Size {
			problems = append(problems, Problem{File: e.File, Reason: fmt.Sprintf("size %d, want %d", len(data), e.Size)})
			continue
		}
		id, err := ContentID(data)
		if err != nil || id.String() != e.CID {
			problems = append(problems, Problem{File: e.File, Reason: "content id mismatch"})
		}
	}
	return problems
}

// Lookup returns the entry filling role.
func (m Manifest) Lookup(role string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Role == role {
			return e, true
		}
	}
	return Entry{}, false
}
