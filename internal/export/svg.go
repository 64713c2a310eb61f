package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/flysim/internal/dynamo"
	"github.com/san-kum/flysim/internal/sim"
)

type Point struct{ X, Y float64 }

// Palette colours successive vehicle tracks.
var Palette = []string{"#00ff00", "#00bfff", "#ff8c00", "#ff00ff", "#ffff00"}

// View picks the two world axes a track is projected onto.
type View int

const (
	TopDown View = iota // x across, z up the page
	Side                // z across, y up the page
)

func ParseView(s string) (View, error) {
	switch s {
	case "top", "":
		return TopDown, nil
	case "side":
		return Side, nil
	}
	return TopDown, fmt.Errorf("unknown view %q", s)
}

func project(v View, s dynamo.Sample) Point {
	if v == Side {
		return Point{s.Position[2], s.Position[1]}
	}
	return Point{s.Position[0], s.Position[2]}
}

type bounds struct{ minX, maxX, minY, maxY float64 }

func boundsOf(tracks [][]Point) bounds {
	b := bounds{}
	first := true
	for _, tr := range tracks {
		for _, p := range tr {
			if first {
				b = bounds{p.X, p.X, p.Y, p.Y}
				first = false
				continue
			}
			b.minX = min(b.minX, p.X)
			b.maxX = max(b.maxX, p.X)
			b.minY = min(b.minY, p.Y)
			b.maxY = max(b.maxY, p.Y)
		}
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b
}

func header(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
}

func path(sb *strings.Builder, pts []Point, b bounds, width, height int, stroke string) {
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
	for i, p := range pts {
		x := (p.X - b.minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-b.minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
}

// TrajectoryToSVG draws a single polyline scaled to fit the canvas.
func TrajectoryToSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}
	var sb strings.Builder
	header(&sb, width, height)
	path(&sb, points, boundsOf([][]Point{points}), width, height, strokeColor)
	sb.WriteString("</svg>")
	return sb.String()
}

// FlightToSVG draws every vehicle track of a run on shared axes, labelled
// with the vehicle name.
func FlightToSVG(result *sim.Result, view View, width, height int) string {
	tracks := make([][]Point, 0, len(result.Samples))
	for _, samples := range result.Samples {
		pts := make([]Point, len(samples))
		for i, s := range samples {
			pts[i] = project(view, s)
		}
		tracks = append(tracks, pts)
	}
	if len(tracks) == 0 {
		return ""
	}

	b := boundsOf(tracks)
	var sb strings.Builder
	header(&sb, width, height)
	for i, pts := range tracks {
		if len(pts) < 2 {
			continue
		}
		color := Palette[i%len(Palette)]
		path(&sb, pts, b, width, height, color)
		if i < len(result.Vehicles) {
			sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 16*(i+1), color, result.Vehicles[i]))
		}
	}
	sb.WriteString("</svg>")
	return sb.String()
}
