// Package sched is the outer scheduler driving internal/raster end to end:
// it fans a fixed worker pool across a triangle's tile rows exactly the way
// tile.go/polygon_core.go do. A sync.WaitGroup joins one goroutine per
// core, each running Bin (which performs its own Edge Setup), the pixel
// drawer, and the writer for its own rows. No goroutine ever touches
// a tile row any other goroutine owns, so joining before the next triangle
// is sufficient synchronization on its own.
package sched

import (
	"runtime"
	"sync"

	"github.com/ghetty3d/polycore/internal/drawers"
	"github.com/ghetty3d/polycore/internal/raster"
)

// Variant selects which Tile Binner/Writer pair a Draw call runs.
type Variant int

const (
	NormalVariant Variant = iota
	SubsectorVariant
)

// Scheduler owns a fixed pool of WorkerThread scratch buffers, one per
// core, allocated once and reused triangle-to-triangle.
type Scheduler struct {
	NumWorkers int
	threads    []*raster.WorkerThread
}

// New builds a scheduler with numWorkers goroutines (runtime.NumCPU() if
// numWorkers <= 0), each given scratch sized to maxTilesPerTriangle tiles.
// maxTilesPerTriangle is the caller's declared worst-case bounding box
// across every triangle it plans to feed this scheduler, see
// raster.BoundingBoxTiles.
func New(numWorkers, maxTilesPerTriangle int) *Scheduler {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if maxTilesPerTriangle < 1 {
		maxTilesPerTriangle = 1
	}

	s := &Scheduler{NumWorkers: numWorkers}
	s.threads = make([]*raster.WorkerThread, numWorkers)
	for i := range s.threads {
		s.threads[i] = &raster.WorkerThread{
			FullSpans:     make([]raster.FullSpan, maxTilesPerTriangle+1),
			PartialBlocks: make([]raster.PartialBlock, maxTilesPerTriangle+1),
		}
	}
	return s
}

// Draw runs the full pipeline for one triangle (Bin, pixel draw, Writer)
// fanned out by tile row across the worker pool, and joins before
// returning. drawFn/shade may be nil to exercise binning and the writer
// alone; TestDrawWithoutDrawerStillRunsWriter does this to check the
// Stencil Writer on its own.
func (s *Scheduler) Draw(args *raster.TriangleArgs, variant Variant, drawFn drawers.DrawFunc, shade *drawers.DrawArgs) {
	var wg sync.WaitGroup
	wg.Add(s.NumWorkers)

	for core := 0; core < s.NumWorkers; core++ {
		go func(core int) {
			defer wg.Done()

			thread := s.threads[core]
			thread.Core, thread.NumCores = core, s.NumWorkers

			switch variant {
			case SubsectorVariant:
				raster.BinSubsector(args, thread)
			default:
				raster.BinNormal(args, thread)
			}

			if drawFn != nil {
				da := *shade
				da.Dest = args.Dest
				da.Thread = thread
				drawFn(&da)
			}

			switch variant {
			case SubsectorVariant:
				raster.SubsectorWrite(args, thread)
			default:
				raster.StencilWrite(args, thread)
			}
		}(core)
	}

	wg.Wait()
}

// Thread exposes one worker's scratch buffer, letting callers (tests, or a
// caller that wants to inspect emitted spans after a Draw) read back what
// the last Draw call produced for that core.
func (s *Scheduler) Thread(core int) *raster.WorkerThread {
	return s.threads[core]
}
