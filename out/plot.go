// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gotop/topo"
	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
)

// SaveConvergence plots the objective and volume histories into a PNG file.
// Returns the path of the written file.
func (o *Manager) SaveConvergence(res *topo.Result) (fn string, err error) {
	n := len(res.ObjHist)
	if n < 2 {
		return "", chk.Err("need at least 2 iterations to plot convergence; got %d", n)
	}
	xs := floats.Span(make([]float64, n), 1, float64(n))
	graph := chart.Chart{
		Title: o.Key,
		XAxis: chart.XAxis{
			Name: "iteration",
		},
		YAxis: chart.YAxis{
			Name: "compliance",
		},
		YAxisSecondary: chart.YAxis{
			Name: "volume fraction",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "compliance",
				XValues: xs,
				YValues: res.ObjHist,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2.0,
				},
			},
			chart.ContinuousSeries{
				Name:    "volume fraction",
				YAxis:   chart.YAxisSecondary,
				XValues: xs,
				YValues: res.VolHist,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2.0,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	fn = path.Join(o.DirRes, io.Sf("%s_conv.png", o.Key))
	fil, err := os.Create(fn)
	if err != nil {
		return "", err
	}
	defer fil.Close()
	err = graph.Render(chart.PNG, fil)
	if err != nil {
		return "", chk.Err("cannot render convergence plot:\n%v", err)
	}
	if o.Verbose {
		io.Pfblue2("file <%s> written\n", fn)
	}
	return
}
