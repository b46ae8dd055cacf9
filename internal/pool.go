package internal

import (
	"bytes"
	"sync"

	"github.com/ethaniccc/float32-cube/cube"
)

// BufferPool recycles scratch byte buffers (state checksums and the like).
var BufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer([]byte{})
	},
}

// BoxPool recycles the box slices gathered for swept collision passes.
var BoxPool = sync.Pool{
	New: func() interface{} {
		s := make([]cube.BBox, 0, 32)
		return &s
	},
}

// GetBoxes returns an empty box slice from the pool.
func GetBoxes() *[]cube.BBox {
	boxes := BoxPool.Get().(*[]cube.BBox)
	*boxes = (*boxes)[:0]
	return boxes
}

// PutBoxes returns a box slice to the pool.
func PutBoxes(boxes *[]cube.BBox) {
	BoxPool.Put(boxes)
}
