package SPH2D

import (
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
)

type PlotMeta struct {
	Plot            bool
	FrameTime       time.Duration
	StepsBeforePlot int
}

type ChartState struct {
	chart    *chart2d.Chart2D
	colorMap *utils2.ColorMap
}

// PlotParticles draws the current particle positions as a scatter, one series
// per fluid phase, into a live chart window sized to the domain.
func (c *SPH) PlotParticles(pm *PlotMeta) {
	if !pm.Plot {
		return
	}
	if c.chart.chart == nil {
		c.chart.chart = chart2d.NewChart2D(1920, 1280,
			float32(c.DomainMin[0]), float32(c.DomainMax[0]),
			float32(c.DomainMin[1]), float32(c.DomainMax[1]))
		c.chart.colorMap = utils2.NewColorMap(-1, 1, 1)
		go c.chart.chart.Plot()
	}
	var lightX, lightY, heavyX, heavyY []float64
	for i := 0; i < c.N; i++ {
		if c.Color[i] == 0 {
			lightX = append(lightX, c.Pos[i][0])
			lightY = append(lightY, c.Pos[i][1])
		} else {
			heavyX = append(heavyX, c.Pos[i][0])
			heavyY = append(heavyY, c.Pos[i][1])
		}
	}
	pSeries := func(name string, X, Y []float64, color float32) {
		if err := c.chart.chart.AddSeries(name, X, Y,
			chart2d.CrossGlyph, chart2d.NoLine, c.chart.colorMap.GetRGB(color)); err != nil {
			panic("unable to add graph series")
		}
	}
	pSeries("Light", lightX, lightY, -0.7)
	pSeries("Heavy", heavyX, heavyY, 0.7)
	if pm.FrameTime != 0 {
		time.Sleep(pm.FrameTime)
	}
}
