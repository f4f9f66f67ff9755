package handlers

import (
	"fmt"
	"math"

	"poolcalc/models"
)

// ---------- Utility ----------

func round1(x float64) float64 { return math.Round(x*10) / 10.0 }
func round2(x float64) float64 { return math.Round(x*100) / 100.0 }

// poolGeometry holds a pool's dimensions converted to meters.
type poolGeometry struct {
	Length        float64
	Width         float64
	Depth         float64
	WallThickness float64
}

func newPoolGeometry(d models.Dimensions) poolGeometry {
	return poolGeometry{
		Length:        d.Length / 1000,
		Width:         d.Width / 1000,
		Depth:         d.Depth / 1000,
		WallThickness: d.WallThickness / 1000,
	}
}

func (g poolGeometry) OuterLength() float64    { return g.Length + 2*g.WallThickness }
func (g poolGeometry) OuterWidth() float64     { return g.Width + 2*g.WallThickness }
func (g poolGeometry) InnerPerimeter() float64 { return 2 * (g.Length + g.Width) }
func (g poolGeometry) OuterPerimeter() float64 { return 2 * (g.OuterLength() + g.OuterWidth()) }

// ---------- Basic dimensions ----------

// CalculateBasicDimensions computes the geometry breakdown of a pool.
// Surface, perimeter and volume values are multiplied by the profile's
// correction factors so they match the proposal the profile was priced on.
func CalculateBasicDimensions(dims models.Dimensions, factors models.CorrectionFactors) (map[string]interface{}, models.RawDimensions) {
	g := newPoolGeometry(dims)

	waterSurface := g.Length * g.Width * factors.WaterSurface
	perimeter := g.InnerPerimeter() * factors.Perimeter
	wallArea := g.InnerPerimeter() * g.Depth * factors.WallArea
	finishingArea := (g.Length*g.Width + g.InnerPerimeter()*g.Depth) * factors.FinishingArea
	waterVolume := g.Length * g.Width * g.Depth * factors.WaterVolume

	concreteVolume := g.OuterLength()*g.OuterWidth()*g.WallThickness +
		g.InnerPerimeter()*g.Depth*g.WallThickness

	pitLength := g.Length + 2*(g.WallThickness+0.55)
	pitWidth := g.Width + 2*(g.WallThickness+0.55)
	pitDepth := g.Depth + g.WallThickness + 0.2
	pitArea := pitLength * pitWidth
	earthVolume := pitArea * pitDepth

	raw := models.RawDimensions{
		WaterSurface:   waterSurface,
		Perimeter:      perimeter,
		WallArea:       wallArea,
		FinishingArea:  finishingArea,
		WaterVolume:    waterVolume,
		ConcreteVolume: concreteVolume,
		EarthVolume:    earthVolume,
		OuterLength:    g.OuterLength(),
		OuterWidth:     g.OuterWidth(),
		OuterPerimeter: g.OuterPerimeter(),
		PitArea:        pitArea,
		PitLength:      pitLength,
		PitWidth:       pitWidth,
		PitDepth:       pitDepth,
	}

	result := map[string]interface{}{
		"Глубина":                 fmt.Sprintf("%.0f мм", dims.Depth),
		"Длина внутренняя":        fmt.Sprintf("%.0f мм", dims.Length),
		"Ширина внутренняя":       fmt.Sprintf("%.0f мм", dims.Width),
		"Площадь водного зеркала": fmt.Sprintf("%.1f м²", waterSurface),
		"Периметр":                fmt.Sprintf("%.1f м/п", perimeter),
		"Площадь стен":            fmt.Sprintf("%.1f м²", wallArea),
		"Площадь отделки":         fmt.Sprintf("%.1f м²", finishingArea),
		"Объем воды":              fmt.Sprintf("%.1f м³", waterVolume),
		"Объем бетона":            fmt.Sprintf("%.1f м³", concreteVolume),
		"Объем земляных работ":    fmt.Sprintf("%.1f м³", earthVolume),
		"Общая площадь":           fmt.Sprintf("%.1f м²", finishingArea),
		"_raw":                    raw,
	}
	return result, raw
}

// ---------- Earthworks ----------

// CalculateEarthworks sizes the excavation pit. The pit extends 0.8 m past
// each outer wall to leave room for formwork assembly.
func CalculateEarthworks(dims models.Dimensions) map[string]string {
	g := newPoolGeometry(dims)

	pitLength := g.Length + 2*(g.WallThickness+0.8)
	pitWidth := g.Width + 2*(g.WallThickness+0.8)
	pitDepth := g.Depth + g.WallThickness + 0.2
	pitArea := pitLength * pitWidth
	pitVolume := pitArea * pitDepth

	poolVolume := g.OuterLength() * g.OuterWidth() * (g.Depth + g.WallThickness)
	backfillVolume := pitVolume - poolVolume
	removalVolume := pitVolume
	trucks := int(math.Ceil(removalVolume / 7))

	return map[string]string{
		"Глубина котлована":       fmt.Sprintf("%.0f мм", pitDepth*1000),
		"Длина котлована":         fmt.Sprintf("%.0f мм", pitLength*1000),
		"Ширина котлована":        fmt.Sprintf("%.0f мм", pitWidth*1000),
		"Площадь котлована":       fmt.Sprintf("%.1f м²", pitArea),
		"Объем земляных работ":    fmt.Sprintf("%.1f м³", pitVolume),
		"Объем обратной засыпки":  fmt.Sprintf("%.1f м³", backfillVolume),
		"Объем вывоза грунта":     fmt.Sprintf("%.1f м³", removalVolume),
		"Количество КАМАЗов":      fmt.Sprintf("%d", trucks),
	}
}

// ---------- Concrete works ----------

// CalculateConcreteWorks computes concrete, gravel and rebar quantities for
// the base slab and walls. Rebar is estimated at 100 kg per cubic meter.
func CalculateConcreteWorks(dims models.Dimensions) map[string]string {
	g := newPoolGeometry(dims)

	baseArea := g.OuterLength() * g.OuterWidth()
	baseConcrete := baseArea * g.WallThickness
	wallsConcrete := g.InnerPerimeter() * g.Depth * g.WallThickness
	totalConcrete := baseConcrete + wallsConcrete
	gravelVolume := baseArea * 0.1
	rebarWeight := totalConcrete * 100

	return map[string]string{
		"Объем щебня":             fmt.Sprintf("%.1f м³", gravelVolume),
		"Объем бетона основания":  fmt.Sprintf("%.1f м³", baseConcrete),
		"Объем бетона стен":       fmt.Sprintf("%.1f м³", wallsConcrete),
		"Общий объем бетона":      fmt.Sprintf("%.1f м³", totalConcrete),
		"Вес арматуры":            fmt.Sprintf("%.0f кг", rebarWeight),
	}
}

// ---------- Formwork ----------

// CalculateFormwork computes formwork areas and consumables. Plywood sheets
// are 1500x1500 (2.25 m²) with a 20% cutting allowance.
func CalculateFormwork(dims models.Dimensions) map[string]string {
	g := newPoolGeometry(dims)

	outerFormwork := g.OuterPerimeter() * (g.Depth + g.WallThickness)
	innerFormwork := g.InnerPerimeter() * g.Depth
	totalFormwork := outerFormwork + innerFormwork

	plywoodSheets := int(math.Ceil(totalFormwork / 2.25 * 1.2))
	rebarWeight := (g.InnerPerimeter()*g.Depth + g.Length*g.Width) * 5
	timberLength := totalFormwork * 3

	return map[string]string{
		"Площадь наружной опалубки":    fmt.Sprintf("%.1f м²", outerFormwork),
		"Площадь внутренней опалубки":  fmt.Sprintf("%.1f м²", innerFormwork),
		"Общая площадь опалубки":       fmt.Sprintf("%.1f м²", totalFormwork),
		"Количество листов фанеры":     fmt.Sprintf("%d", plywoodSheets),
		"Вес арматуры":                 fmt.Sprintf("%.0f кг", rebarWeight),
		"Длина бруса 50x100":           fmt.Sprintf("%.0f м", timberLength),
	}
}
