package host

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/strafekit/strafekit/controller"
	"github.com/strafekit/strafekit/internal"
)

// Checksum hashes every entity's kinematic state in spawn order. Two hosts
// running the same inputs over the same world produce identical checksums,
// which makes replay divergence cheap to detect.
func (h *Host) Checksum() uint64 {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	defer internal.BufferPool.Put(buf)
	buf.Reset()

	for el := h.entities.Front(); el != nil; el = el.Next() {
		writeEntityState(buf, el.Key, &el.Value.State)
	}
	return xxh3.Hash(buf.Bytes())
}

func writeEntityState(buf *bytes.Buffer, id EntityID, st *controller.State) {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], uint64(id))
	buf.Write(scratch[:])

	for _, v := range []float32{
		st.Pos.X(), st.Pos.Y(), st.Pos.Z(),
		st.Vel.X(), st.Vel.Y(), st.Vel.Z(),
		st.CrouchBlend,
	} {
		binary.LittleEndian.PutUint32(scratch[:4], math.Float32bits(v))
		buf.Write(scratch[:4])
	}

	flags := byte(st.Mode)
	if st.OnGround {
		flags |= 1 << 4
	}
	if st.JumpQueued {
		flags |= 1 << 5
	}
	if st.Noclip {
		flags |= 1 << 6
	}
	buf.WriteByte(flags)
}
