// internal/anarci/parse.go
package anarci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"abtools-core/numbering"
)

type tableKind int

const (
	tableNone tableKind = iota
	tableHit
	tableGermline
)

// Parse reads an ANARCI text report. Every "//"-terminated record becomes
// one Result; records without a numbered domain have no Domains.
func Parse(r io.Reader) ([]numbering.Result, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var (
		out  []numbering.Result
		cur  *numbering.Result
		dom  *numbering.Domain
		next tableKind
		ln   int
	)
	flushDomain := func() {
		if cur != nil && dom != nil {
			cur.Domains = append(cur.Domains, *dom)
		}
		dom = nil
	}
	flushRecord := func() {
		flushDomain()
		if cur != nil {
			out = append(out, *cur)
		}
		cur = nil
		next = tableNone
	}

	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue

		case trimmed == "//":
			flushRecord()

		case strings.HasPrefix(trimmed, "#|"):
			cells := strings.Split(strings.Trim(trimmed[1:], "|"), "|")
			if len(cells) > 1 && cells[0] == "species" {
				switch cells[1] {
				case "chain_type":
					next = tableHit
				case "v_gene":
					next = tableGermline
				default:
					next = tableNone
				}
				continue
			}
			if dom == nil {
				return nil, fmt.Errorf("anarci report line %d: table row outside a domain", ln)
			}
			var err error
			switch next {
			case tableHit:
				dom.Hit, err = parseHit(cells)
			case tableGermline:
				var g numbering.Germlines
				g, err = parseGermlines(cells)
				dom.Germlines = &g
			}
			if err != nil {
				return nil, fmt.Errorf("anarci report line %d: %w", ln, err)
			}
			next = tableNone

		case strings.HasPrefix(trimmed, "#"):
			text := strings.TrimSpace(trimmed[1:])
			switch {
			case cur == nil:
				cur = &numbering.Result{Name: text}
			case strings.HasPrefix(text, "Domain "):
				flushDomain()
				dom = &numbering.Domain{}
			case strings.HasPrefix(text, "Scheme = "):
				if dom != nil {
					dom.Scheme = strings.TrimSpace(strings.TrimPrefix(text, "Scheme = "))
				}
			}

		default:
			if dom == nil {
				return nil, fmt.Errorf("anarci report line %d: residue outside a domain", ln)
			}
			res, err := parseResidue(trimmed)
			if err != nil {
				return nil, fmt.Errorf("anarci report line %d: %w", ln, err)
			}
			dom.Residues = append(dom.Residues, res)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flushRecord()
	return out, nil
}

// parseResidue reads "H 111   A -": chain class, position, optional
// insertion code, residue.
func parseResidue(line string) (numbering.Residue, error) {
	f := strings.Fields(line)
	if len(f) != 3 && len(f) != 4 {
		return numbering.Residue{}, fmt.Errorf("bad residue line %q", line)
	}
	pos, err := strconv.Atoi(f[1])
	if err != nil {
		return numbering.Residue{}, fmt.Errorf("bad position %q", f[1])
	}
	res := numbering.Residue{Pos: pos}
	aa := f[len(f)-1]
	if len(aa) != 1 {
		return numbering.Residue{}, fmt.Errorf("bad residue %q", aa)
	}
	res.AA = aa[0]
	if len(f) == 4 {
		if len(f[2]) != 1 {
			return numbering.Residue{}, fmt.Errorf("bad insertion code %q", f[2])
		}
		res.Ins = f[2][0]
	}
	return res, nil
}

func parseHit(cells []string) (numbering.Hit, error) {
	if len(cells) != 6 {
		return numbering.Hit{}, fmt.Errorf("hit row has %d cells, want 6", len(cells))
	}
	h := numbering.Hit{Species: cells[0], ChainType: cells[1]}
	var err error
	if h.EValue, err = strconv.ParseFloat(cells[2], 64); err != nil {
		return h, fmt.Errorf("bad e-value %q", cells[2])
	}
	if h.Score, err = strconv.ParseFloat(cells[3], 64); err != nil {
		return h, fmt.Errorf("bad score %q", cells[3])
	}
	if h.Start, err = strconv.Atoi(cells[4]); err != nil {
		return h, fmt.Errorf("bad start index %q", cells[4])
	}
	if h.End, err = strconv.Atoi(cells[5]); err != nil {
		return h, fmt.Errorf("bad end index %q", cells[5])
	}
	return h, nil
}

func parseGermlines(cells []string) (numbering.Germlines, error) {
	if len(cells) != 5 {
		return numbering.Germlines{}, fmt.Errorf("germline row has %d cells, want 5", len(cells))
	}
	g := numbering.Germlines{Species: cells[0], VGene: cells[1], JGene: cells[3]}
	var err error
	if g.VIdentity, err = strconv.ParseFloat(cells[2], 64); err != nil {
		return g, fmt.Errorf("bad v identity %q", cells[2])
	}
	if g.JIdentity, err = strconv.ParseFloat(cells[4], 64); err != nil {
		return g, fmt.Errorf("bad j identity %q", cells[4])
	}
	return g, nil
}
