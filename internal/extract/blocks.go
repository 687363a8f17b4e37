package extract

import "strings"

type StopType string

const (
	StopPickup   StopType = "pickup"
	StopDelivery StopType = "delivery"
)

// Block is the contiguous run of lines belonging to one stop, starting with
// its header line.
type Block struct {
	Type  StopType
	Lines []string
}

// HeaderRule maps a case-insensitive line prefix to the stop type it opens.
type HeaderRule struct {
	Prefix string
	Type   StopType
}

// SplitBlocks partitions lines into stop blocks. A line whose trimmed,
// uppercased form starts with a header prefix opens a new block; every
// following line up to the next header belongs to it, header line included.
// Lines before the first header are discarded.
func SplitBlocks(lines []string, rules []HeaderRule) []Block {
	var out []Block
	var current *Block
	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		upper := strings.ToUpper(trimmed)

		opened := false
		for _, rule := range rules {
			if strings.HasPrefix(upper, strings.ToUpper(rule.Prefix)) {
				if current != nil {
					out = append(out, *current)
				}
				current = &Block{Type: rule.Type, Lines: []string{trimmed}}
				opened = true
				break
			}
		}
		if opened {
			continue
		}
		if current != nil {
			current.Lines = append(current.Lines, trimmed)
		}
	}
	if current != nil {
		out = append(out, *current)
	}
	return out
}

// Text joins the block lines for whole-block regex scans.
func (b Block) Text() string {
	return strings.Join(b.Lines, "\n")
}
