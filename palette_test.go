package asciimage_test

import (
	"strings"

	. "github.com/kevin-cantwell/asciimage"

	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

// legacyLevel is the overlapping banding of an earlier converter. It is
// only kept to check that the current bands follow the same progression.
func legacyLevel(dot int) int {
	switch {
	case dot == 0:
		return 0
	case dot <= 31:
		return 1
	case dot <= 62:
		return 2
	case dot <= 93:
		return 3
	case dot <= 124:
		return 4
	case dot <= 155:
		return 5
	case dot <= 186:
		return 6
	case dot <= 217:
		return 7
	}
	return 8
}

// wideRamp returns n distinct printable glyphs.
func wideRamp(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteRune(rune(0x100 + i))
	}
	return b.String()
}

var _ = Describe("Palette", func() {
	p := DefaultPalette

	It("has nine levels from blank to @", func() {
		Expect(p.Levels()).To(Equal(9))
		Expect(p.Rune(0)).To(Equal(' '))
		Expect(p.Rune(p.Densest())).To(Equal('@'))
		Expect(p.String()).To(Equal(" .:-=*#%@"))
	})

	Describe("Quantize", func() {
		It("maps every byte to exactly one valid level", func() {
			for b := 0; b <= 255; b++ {
				Expect(p.Valid(p.Quantize(uint8(b)))).To(BeTrue(), "byte %d", b)
			}
		})

		It("never maps a brighter sample to a lighter glyph", func() {
			prev := p.Quantize(0)
			for b := 1; b <= 255; b++ {
				l := p.Quantize(uint8(b))
				Expect(l).To(BeNumerically(">=", prev), "byte %d", b)
				prev = l
			}
		})

		It("maps the extremes to the lightest and densest levels", func() {
			Expect(p.Quantize(0)).To(Equal(Level(0)))
			Expect(p.Quantize(255)).To(Equal(p.Densest()))
		})

		It("uses every level", func() {
			seen := map[Level]bool{}
			for b := 0; b <= 255; b++ {
				seen[p.Quantize(uint8(b))] = true
			}
			Expect(seen).To(HaveLen(p.Levels()))
		})

		table.DescribeTable("band boundaries",
			func(sample int, want Level) {
				Expect(p.Quantize(uint8(sample))).To(Equal(want))
			},
			table.Entry("first band end", 27, Level(0)),
			table.Entry("second band start", 28, Level(1)),
			table.Entry("middle", 128, Level(4)),
			table.Entry("seventh band end", 223, Level(7)),
			table.Entry("last band start", 224, Level(8)),
			table.Entry("last band absorbs the remainder", 254, Level(8)),
		)

		It("stays within one level of the legacy banding", func() {
			for b := 0; b <= 255; b++ {
				diff := int(p.Quantize(uint8(b))) - legacyLevel(b)
				Expect(diff).To(BeNumerically(">=", -1), "byte %d", b)
				Expect(diff).To(BeNumerically("<=", 1), "byte %d", b)
			}
		})

		It("splits a two glyph palette at 128", func() {
			two := Palette(" #")
			Expect(two.Quantize(127)).To(Equal(Level(0)))
			Expect(two.Quantize(128)).To(Equal(Level(1)))
		})

		It("is the identity for a 256 glyph palette", func() {
			wide := make(Palette, 256)
			for i := range wide {
				wide[i] = rune(0x100 + i)
			}
			for b := 0; b <= 255; b++ {
				Expect(wide.Quantize(uint8(b))).To(Equal(Level(b)))
			}
		})
	})

	It("panics on a level outside the palette", func() {
		Expect(func() { p.Rune(9) }).To(Panic())
	})

	Describe("size limits", func() {
		It("refuses to quantize with an empty palette", func() {
			Expect(func() { Palette("").Quantize(3) }).To(Panic())
		})

		It("refuses to quantize with more glyphs than levels", func() {
			Expect(func() { make(Palette, MaxGlyphs+1).Quantize(3) }).To(Panic())
		})

		It("refuses to build a converter with an oversized palette", func() {
			Expect(func() { NewConverter(WithPalette(make(Palette, 300))) }).To(Panic())
		})

		It("refuses to assemble with a single glyph", func() {
			Expect(func() { Assemble(uniformGray(2, 2, 9), Palette("@")) }).To(Panic())
		})

		It("accepts both limits", func() {
			wide := make(Palette, MaxGlyphs)
			for i := range wide {
				wide[i] = rune(0x100 + i)
			}
			Expect(func() { NewConverter(WithPalette(wide)) }).NotTo(Panic())
			Expect(func() { NewConverter(WithPalette(Palette(" @"))) }).NotTo(Panic())
		})
	})

	table.DescribeTable("ParsePalette",
		func(ramp string, ok bool) {
			got, err := ParsePalette(ramp)
			if ok {
				Expect(err).NotTo(HaveOccurred())
				Expect(got.String()).To(Equal(ramp))
			} else {
				Expect(err).To(HaveOccurred())
			}
		},
		table.Entry("default", " .:-=*#%@", true),
		table.Entry("two glyphs", " #", true),
		table.Entry("unicode", " ░▒▓█", true),
		table.Entry("empty", "", false),
		table.Entry("single glyph", "@", false),
		table.Entry("duplicate", " ..@", false),
		table.Entry("control character", " \t@", false),
		table.Entry("invalid utf-8", " \xff@", false),
		table.Entry("too many glyphs", wideRamp(257), false),
	)
})
