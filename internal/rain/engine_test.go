package rain_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/digirain/internal/glyph"
	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/rng"
)

var _ = Describe("Engine", func() {
	Describe("construction", func() {
		It("rejects non-positive sizes", func() {
			for _, size := range []int{0, -1, -38} {
				_, err := rain.New(size, rain.DefaultParams(), rng.New(1))
				Expect(err).To(MatchError(rain.ErrInvalidSize))
			}
		})

		It("rejects malformed ranges", func() {
			p := rain.DefaultParams()
			p.ContentVelocity = rng.Range{Min: 0, Max: 10}
			_, err := rain.New(8, p, rng.New(1))
			Expect(err).To(MatchError(rain.ErrInvalidRange))

			p = rain.DefaultParams()
			p.Flicker = rng.Range{Min: 10, Max: 5}
			_, err = rain.New(8, p, rng.New(1))
			Expect(err).To(MatchError(rain.ErrInvalidRange))
		})

		It("rejects an empty charset", func() {
			p := rain.DefaultParams()
			p.Charset = nil
			_, err := rain.New(8, p, rng.New(1))
			Expect(err).To(MatchError(rain.ErrEmptyCharset))
		})

		It("rejects scripted drips placed outside the grid", func() {
			bad := []rain.Drip{
				{Column: 4, Velocity: 1, Glyphs: []string{"X"}},
				{Column: -1, Velocity: 1, Glyphs: []string{"X"}},
				{Column: 1, Row: -1, Velocity: 1, Glyphs: []string{"X"}},
				{Column: 1, Row: 5, Velocity: 1, Glyphs: []string{"X"}},
			}
			for _, d := range bad {
				e, err := rain.New(4, rain.DefaultParams(), rng.New(1), rain.WithDrips(d))
				Expect(err).To(MatchError(rain.ErrInvalidRange))
				Expect(e).To(BeNil())
			}
		})

		It("accepts a scripted drip sitting on the bottom edge", func() {
			e, err := rain.New(4, rain.DefaultParams(), rng.New(1), rain.WithDrips(rain.Drip{
				Column:   3,
				Row:      4,
				Velocity: 1,
				Glyphs:   []string{"X"},
			}))
			Expect(err).NotTo(HaveOccurred())

			e.Tick()
			Expect(e.Stats().ContentExpired).To(Equal(1))
			Expect(e.Stats().Spawned).To(Equal(3))
		})

		It("starts with a blank grid and a content population proportional to size", func() {
			e, err := rain.New(40, rain.DefaultParams(), rng.New(5))
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Frame()).To(BeZero())
			Expect(e.Grid().Size()).To(Equal(40))
			Expect(e.Grid().Filled()).To(BeZero())

			drips := e.Drips()
			Expect(len(drips)).To(BeNumerically(">=", 10))
			Expect(len(drips)).To(BeNumerically("<", 40))
			for _, d := range drips {
				Expect(d.IsEraser()).To(BeFalse())
				Expect(d.Row).To(BeZero())
				Expect(d.Column).To(BeNumerically("<", 40))
				Expect(d.Velocity).To(BeNumerically(">=", 10))
				Expect(d.Velocity).To(BeNumerically("<", 100))
				Expect(len(d.Glyphs)).To(BeNumerically(">=", 1))
				Expect(len(d.Glyphs)).To(BeNumerically("<=", 20))
			}
		})
	})

	Describe("a single fast content drip", func() {
		var e *rain.Engine

		BeforeEach(func() {
			var err error
			e, err = rain.New(4, rain.DefaultParams(), rng.New(11), rain.WithDrips(rain.Drip{
				Column:   0,
				Velocity: 1,
				Glyphs:   []string{"X"},
			}))
			Expect(err).NotTo(HaveOccurred())
		})

		It("paints its column one row per tick", func() {
			e.Tick()
			Expect(e.Grid().At(0, 0)).To(Equal("X"))
			Expect(e.Grid().At(0, 1)).To(Equal(glyph.Blank))
			Expect(e.Drips()[0].Row).To(Equal(1))

			for i := 0; i < 3; i++ {
				e.Tick()
			}
			for row := 0; row < 4; row++ {
				Expect(e.Grid().At(0, row)).To(Equal("X"))
			}
			Expect(e.Drips()).To(HaveLen(1))
			Expect(e.Drips()[0].Row).To(Equal(4))
		})

		It("is replaced by exactly three drips once it reaches the bottom", func() {
			for i := 0; i < 5; i++ {
				e.Tick()
			}

			stats := e.Stats()
			Expect(stats.Expired).To(Equal(1))
			Expect(stats.ContentExpired).To(Equal(1))
			Expect(stats.Spawned).To(Equal(3))

			drips := e.Drips()
			Expect(drips).To(HaveLen(3))
			for _, d := range drips {
				Expect(d.CreatedAt).To(Equal(int64(5)))
				Expect(d.Row).To(BeNumerically("<=", 1))
			}
			Expect(drips[0].IsEraser()).To(BeFalse())
			Expect(drips[1].IsEraser()).To(BeTrue())
			Expect(drips[2].IsEraser()).To(BeTrue())
			Expect(drips[2].Column).To(Equal(0))
			Expect(drips[2].Velocity).To(BeNumerically(">=", 5))
			Expect(drips[2].Velocity).To(BeNumerically("<", 25))
		})
	})

	Describe("a drip with an empty pool", func() {
		It("writes blanks and still respawns like a content drip", func() {
			e, err := rain.New(2, rain.DefaultParams(), rng.New(9), rain.WithDrips(rain.Drip{
				Column:   0,
				Velocity: 1,
			}))
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Drips()[0].IsEraser()).To(BeFalse())

			e.Tick()
			Expect(e.Stats().Writes).To(Equal(1))
			e.Tick()
			Expect(e.Grid().Filled()).To(BeZero())
			Expect(e.Drips()[0].Row).To(Equal(2))

			e.Tick()
			Expect(e.Stats().Expired).To(Equal(1))
			Expect(e.Stats().ContentExpired).To(Equal(1))
			Expect(e.Stats().EraserExpired).To(BeZero())
			Expect(e.Stats().Spawned).To(Equal(3))
			Expect(e.Drips()).To(HaveLen(3))
		})
	})

	Describe("an eraser drip", func() {
		It("disappears at the bottom without spawning anything", func() {
			e, err := rain.New(10, rain.DefaultParams(), rng.New(3), rain.WithDrips(rain.Drip{
				Column:   4,
				Velocity: 5,
				Glyphs:   []string{glyph.Blank},
			}))
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 50; i++ {
				e.Tick()
				Expect(e.Stats().Spawned).To(BeZero())
			}
			Expect(e.Drips()[0].Row).To(Equal(10))

			e.Tick()
			Expect(e.Stats().Expired).To(Equal(1))
			Expect(e.Stats().EraserExpired).To(Equal(1))
			Expect(e.Stats().Spawned).To(BeZero())
			Expect(e.Drips()).To(BeEmpty())
			Expect(e.Grid().Filled()).To(BeZero())
		})
	})

	Describe("invariants over a long run", func() {
		const size = 20

		It("keeps rows in bounds, respawns 3x per content expiry, and only shows charset glyphs", func() {
			p := rain.DefaultParams()
			e, err := rain.New(size, p, rng.New(99))
			Expect(err).NotTo(HaveOccurred())

			pendingExpired := 0
			for i := 0; i < 2000; i++ {
				e.Tick()
				stats := e.Stats()

				Expect(stats.Expired).To(Equal(pendingExpired))
				Expect(stats.Spawned).To(Equal(3 * stats.ContentExpired))
				Expect(stats.Expired).To(Equal(stats.ContentExpired + stats.EraserExpired))

				pendingExpired = 0
				for _, d := range e.Drips() {
					Expect(d.Row).To(BeNumerically(">=", 0))
					Expect(d.Row).To(BeNumerically("<=", size))
					if d.Row == size {
						pendingExpired++
					}
				}

				g := e.Grid()
				for col := 0; col < size; col++ {
					for row := 0; row < size; row++ {
						c := g.At(col, row)
						if c != glyph.Blank {
							Expect(p.Charset.Contains(c)).To(BeTrue(), "unexpected glyph %q", c)
						}
					}
				}
			}
			Expect(e.Frame()).To(Equal(int64(2000)))
		})

		It("notifies observers once per tick", func() {
			var frames []int64
			e, err := rain.New(size, rain.DefaultParams(), rng.New(1),
				rain.WithObserver(rain.ObserverFunc(func(s rain.TickStats, g *rain.Grid) {
					frames = append(frames, s.Frame)
				})))
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 5; i++ {
				e.Tick()
			}
			Expect(frames).To(Equal([]int64{1, 2, 3, 4, 5}))
		})
	})

	Describe("reading the grid", func() {
		It("does not change engine state", func() {
			e, err := rain.New(16, rain.DefaultParams(), rng.New(8))
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 300; i++ {
				e.Tick()
			}

			first := e.Grid().String()
			drips := len(e.Drips())
			for i := 0; i < 10; i++ {
				Expect(e.Grid().String()).To(Equal(first))
			}
			Expect(e.Frame()).To(Equal(int64(300)))
			Expect(e.Drips()).To(HaveLen(drips))
		})
	})

	Describe("determinism", func() {
		It("reproduces the same grid from the same seed", func() {
			a, err := rain.New(24, rain.DefaultParams(), rng.New(2024))
			Expect(err).NotTo(HaveOccurred())
			b, err := rain.New(24, rain.DefaultParams(), rng.New(2024))
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 500; i++ {
				a.Tick()
				b.Tick()
			}
			Expect(a.Grid().Equal(b.Grid())).To(BeTrue())
			Expect(a.Drips()).To(Equal(b.Drips()))
		})

		It("lets independent engines coexist", func() {
			a, _ := rain.New(12, rain.DefaultParams(), rng.New(1))
			b, _ := rain.New(12, rain.DefaultParams(), rng.New(1))
			for i := 0; i < 100; i++ {
				a.Tick()
			}
			Expect(b.Frame()).To(BeZero())
			Expect(b.Grid().Filled()).To(BeZero())
		})
	})

	Describe("Reset", func() {
		It("clears the grid and rewinds the frame counter", func() {
			e, err := rain.New(16, rain.DefaultParams(), rng.New(4))
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 400; i++ {
				e.Tick()
			}
			Expect(e.Grid().Filled()).To(BeNumerically(">", 0))

			e.Reset(rng.New(4))
			Expect(e.Frame()).To(BeZero())
			Expect(e.Grid().Filled()).To(BeZero())
			for _, d := range e.Drips() {
				Expect(d.Row).To(BeZero())
			}
		})

		It("restores scripted drips", func() {
			e, err := rain.New(4, rain.DefaultParams(), rng.New(4), rain.WithDrips(rain.Drip{Velocity: 1, Glyphs: []string{"Z"}}))
			Expect(err).NotTo(HaveOccurred())
			e.Tick()
			e.Reset(nil)
			Expect(e.Drips()).To(Equal([]rain.Drip{{Velocity: 1, Glyphs: []string{"Z"}}}))
		})
	})

	Describe("Heads", func() {
		It("reports the cell each content drip last reached", func() {
			e, err := rain.New(6, rain.DefaultParams(), rng.New(4), rain.WithDrips(
				rain.Drip{Column: 2, Velocity: 1, Glyphs: []string{"A"}},
				rain.Drip{Column: 3, Velocity: 1, Glyphs: []string{glyph.Blank}},
			))
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Heads()).To(BeEmpty())

			e.Tick()
			e.Tick()
			Expect(e.Heads()).To(Equal([]rain.Cell{{Col: 2, Row: 1}}))
		})
	})
})
