// Package report describes decoded UF2 files for humans and machines.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/moffa90/go-uf2/uf2"
)

// Hex32 is a 32-bit value rendered as "0x%08X" in JSON.
type Hex32 uint32

func (h Hex32) String() string {
	return fmt.Sprintf("0x%08X", uint32(h))
}

func (h Hex32) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(h.String())), nil
}

func (h *Hex32) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("hex value must be a string: %w", err)
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return fmt.Errorf("bad hex value %q: %w", s, err)
	}
	*h = Hex32(v)
	return nil
}

// Family is one family entry of a report.
type Family struct {
	ID      Hex32  `json:"id"`
	Name    string `json:"name,omitempty"`
	Address Hex32  `json:"address"`
}

// Blocks holds the block counts of a report.
type Blocks struct {
	Total         int `json:"total"`
	Accepted      int `json:"accepted"`
	BadMagic      int `json:"bad_magic"`
	NotMainFlash  int `json:"not_main_flash"`
	TrailingBytes int `json:"trailing_bytes"`
}

// Report summarizes a decoded UF2 file.
type Report struct {
	ID              string   `json:"id"`
	Source          string   `json:"source,omitempty"`
	InputBytes      int      `json:"input_bytes"`
	ImageBytes      int      `json:"image_bytes"`
	Base            Hex32    `json:"base"`
	SHA256          string   `json:"sha256"`
	Flags           Hex32    `json:"flags"`
	FlagsConsistent bool     `json:"flags_consistent"`
	Blocks          Blocks   `json:"blocks"`
	Families        []Family `json:"families"`
}

// New builds a report for input, which decoded to img.
func New(source string, input []byte, img *uf2.Image) *Report {
	s := uf2.Inspect(input)
	sum := sha256.Sum256(img.Data)

	r := &Report{
		ID:              uuid.NewString(),
		Source:          source,
		InputBytes:      len(input),
		ImageBytes:      len(img.Data),
		Base:            Hex32(img.Base),
		SHA256:          hex.EncodeToString(sum[:]),
		Flags:           Hex32(s.Flags),
		FlagsConsistent: s.FlagsConsistent,
		Blocks: Blocks{
			Total:         s.TotalBlocks,
			Accepted:      s.AcceptedBlocks,
			BadMagic:      s.BadMagicBlocks,
			NotMainFlash:  s.NotMainFlashBlocks,
			TrailingBytes: s.TrailingBytes,
		},
		Families: make([]Family, 0, len(img.Families)),
	}

	for _, id := range uf2.SortedFamilies(img.Families) {
		name, _ := uf2.FamilyName(id)
		r.Families = append(r.Families, Family{
			ID:      Hex32(id),
			Name:    name,
			Address: Hex32(img.Families[id]),
		})
	}

	return r
}

// Marshal encodes the report as indented JSON.
func (r *Report) Marshal() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Write encodes the report as indented JSON followed by a newline.
func (r *Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Text writes the header summary in the layout printed by uf2conv.py --info,
// followed by the decoded image details.
func (r *Report) Text(w io.Writer) error {
	var b strings.Builder
	b.WriteString("--- UF2 File Header Info ---\n")
	for _, f := range r.Families {
		if f.Name != "" {
			fmt.Fprintf(&b, "Family ID is %s, hex value is 0x%08x\n", f.Name, uint32(f.ID))
		} else {
			fmt.Fprintf(&b, "Family ID is 0x%08x\n", uint32(f.ID))
		}
		fmt.Fprintf(&b, "Target Address is 0x%08x\n", uint32(f.Address))
	}
	if r.Blocks.Accepted > 0 {
		if r.FlagsConsistent {
			fmt.Fprintf(&b, "All block flag values consistent, 0x%04x\n", uint32(r.Flags))
		} else {
			b.WriteString("Flags were not all the same\n")
		}
	}
	b.WriteString("----------------------------\n")
	fmt.Fprintf(&b, "Blocks: %d total, %d accepted, %d bad magic, %d not main flash\n",
		r.Blocks.Total, r.Blocks.Accepted, r.Blocks.BadMagic, r.Blocks.NotMainFlash)
	fmt.Fprintf(&b, "Image: %d bytes, start address: 0x%08x\n", r.ImageBytes, uint32(r.Base))
	fmt.Fprintf(&b, "SHA-256: %s\n", r.SHA256)

	_, err := io.WriteString(w, b.String())
	return err
}

// KnownFamily is an entry of the well-known family table.
type KnownFamily struct {
	Name string `json:"name"`
	ID   Hex32  `json:"id"`
}

// FamilyTable lists the well-known families sorted by name.
func FamilyTable() []KnownFamily {
	names := uf2.Families()
	out := make([]KnownFamily, 0, len(names))
	for _, n := range names {
		id, _ := uf2.FamilyID(n)
		out = append(out, KnownFamily{Name: n, ID: Hex32(id)})
	}
	return out
}
