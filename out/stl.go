// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bufio"
	"encoding/binary"
	"os"
	"path"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gotop/topo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is a triangulated surface with shared vertices
type Mesh struct {
	V []r3.Vec  // vertices
	T [][3]int  // triangles (counter-clockwise seen from outside)
}

// quads traversed counter-clockwise when seen from outside the solid.
// Offsets are lattice-node offsets (ix,iy,iz) from the cell corner; note
// that iy counts downward so physical y = nely - iy.
var faceQuads = [6][4][3]int{
	{{1, 1, 0}, {1, 0, 0}, {1, 0, 1}, {1, 1, 1}}, // +x
	{{0, 1, 0}, {0, 1, 1}, {0, 0, 1}, {0, 0, 0}}, // -x
	{{0, 0, 0}, {0, 0, 1}, {1, 0, 1}, {1, 0, 0}}, // +y (iy = ey)
	{{0, 1, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1}}, // -y (iy = ey+1)
	{{0, 1, 1}, {1, 1, 1}, {1, 0, 1}, {0, 0, 1}}, // +z
	{{0, 1, 0}, {0, 0, 0}, {1, 0, 0}, {1, 1, 0}}, // -z
}

// cell-index deltas towards the neighbor across each face. The cell above
// (physical +y) has the smaller ey.
var faceNbrs = [6][3]int{
	{1, 0, 0}, {-1, 0, 0}, {0, -1, 0}, {0, 1, 0}, {0, 0, 1}, {0, 0, -1},
}

// Isosurface extracts the boundary of the voxel solid formed by the cells
// with density >= level. Vertices on the node lattice are shared between
// neighboring faces. Coordinates are in cell units with y pointing up.
func Isosurface(fld *topo.Field, level float64) (o *Mesh) {
	o = new(Mesh)
	solid := func(ex, ey, ez int) bool {
		if ex < 0 || ex >= fld.Nelx || ey < 0 || ey >= fld.Nely || ez < 0 || ez >= fld.Nelz {
			return false
		}
		return fld.At(ey, ex, ez) >= level
	}
	vids := make(map[int]int) // lattice node id => vertex index
	nnx, nny := fld.Nelx+1, fld.Nely+1
	vertex := func(ix, iy, iz int) int {
		nid := iz*nnx*nny + ix*nny + iy
		if v, ok := vids[nid]; ok {
			return v
		}
		v := len(o.V)
		vids[nid] = v
		o.V = append(o.V, r3.Vec{X: float64(ix), Y: float64(fld.Nely - iy), Z: float64(iz)})
		return v
	}
	for ez := 0; ez < fld.Nelz; ez++ {
		for ex := 0; ex < fld.Nelx; ex++ {
			for ey := 0; ey < fld.Nely; ey++ {
				if !solid(ex, ey, ez) {
					continue
				}
				for f := 0; f < 6; f++ {
					d := faceNbrs[f]
					if solid(ex+d[0], ey+d[1], ez+d[2]) {
						continue
					}
					var q [4]int
					for k, off := range faceQuads[f] {
						q[k] = vertex(ex+off[0], ey+off[1], ez+off[2])
					}
					o.T = append(o.T, [3]int{q[0], q[1], q[2]})
					o.T = append(o.T, [3]int{q[0], q[2], q[3]})
				}
			}
		}
	}
	return
}

// Smooth applies Laplacian smoothing: each vertex is pulled halfway towards
// the centroid of its edge-connected neighbors, niter times
func (o *Mesh) Smooth(niter int) {
	if niter < 1 || len(o.V) == 0 {
		return
	}
	nbrs := make([][]int, len(o.V))
	seen := make(map[[2]int]bool)
	addEdge := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		if seen[[2]int{a, b}] {
			return
		}
		seen[[2]int{a, b}] = true
		nbrs[a] = append(nbrs[a], b)
		nbrs[b] = append(nbrs[b], a)
	}
	for _, t := range o.T {
		addEdge(t[0], t[1])
		addEdge(t[1], t[2])
		addEdge(t[2], t[0])
	}
	cur := o.V
	nxt := make([]r3.Vec, len(cur))
	for it := 0; it < niter; it++ {
		for i, v := range cur {
			if len(nbrs[i]) == 0 {
				nxt[i] = v
				continue
			}
			var c r3.Vec
			for _, j := range nbrs[i] {
				c = r3.Add(c, cur[j])
			}
			c = r3.Scale(1.0/float64(len(nbrs[i])), c)
			nxt[i] = r3.Add(v, r3.Scale(0.5, r3.Sub(c, v)))
		}
		cur, nxt = nxt, cur
	}
	o.V = cur
}

// WriteSTL writes the mesh in binary STL format (little-endian; 80-byte
// header, uint32 count, then 50 bytes per facet)
func (o *Mesh) WriteSTL(filename string) (err error) {
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if cerr := fil.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(fil)
	var header [80]byte
	copy(header[:], "binary STL generated by gotop")
	if err = binary.Write(w, binary.LittleEndian, header); err != nil {
		return
	}
	if err = binary.Write(w, binary.LittleEndian, uint32(len(o.T))); err != nil {
		return
	}
	var rec struct {
		N    [3]float32
		V    [9]float32
		Attr uint16
	}
	for _, t := range o.T {
		a, b, c := o.V[t[0]], o.V[t[1]], o.V[t[2]]
		n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		if r3.Norm(n) > 0 {
			n = r3.Unit(n)
		}
		rec.N = [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
		rec.V = [9]float32{
			float32(a.X), float32(a.Y), float32(a.Z),
			float32(b.X), float32(b.Y), float32(b.Z),
			float32(c.X), float32(c.Y), float32(c.Z),
		}
		if err = binary.Write(w, binary.LittleEndian, &rec); err != nil {
			return
		}
	}
	return w.Flush()
}

// ExportSTL extracts, smooths and writes the surface of the thresholded
// density field. Returns the path of the written file.
func (o *Manager) ExportSTL(fld *topo.Field) (fn string, err error) {
	msh := Isosurface(fld, o.Sim.Out.StlLevel)
	if len(msh.T) == 0 {
		return "", chk.Err("no cells with density >= %g; cannot export surface", o.Sim.Out.StlLevel)
	}
	msh.Smooth(o.Sim.Out.SmoothIts)
	fn = path.Join(o.DirRes, o.Key+".stl")
	err = msh.WriteSTL(fn)
	if err != nil {
		return "", err
	}
	if o.Verbose {
		io.Pfblue2("file <%s> written\n", fn)
	}
	return
}
