package handlers

import (
	"math"

	"poolcalc/models"

	"github.com/shopspring/decimal"
)

// Reference dimensions of the proposal the equipment list was priced on
// (8000x4000x1500 mm).
const (
	referenceSurface   = 32.0
	referencePerimeter = 26.0
	referenceVolume    = 48.0
	referenceArea      = 71.6
)

// CalculateKPItems builds the itemized commercial proposal. Quantities and
// section totals are scaled from the profile's reference proposal by how the
// requested pool compares to the reference dimensions.
func CalculateKPItems(dims models.Dimensions, poolType, profileID string) models.KPItems {
	profile := models.GetProfile(profileID)

	length := dims.Length / 1000
	width := dims.Width / 1000
	depth := dims.Depth / 1000

	waterSurface := length * width
	perimeter := 2 * (length + width)
	wallArea := perimeter * depth
	finishingArea := waterSurface + wallArea
	waterVolume := waterSurface * depth

	surfaceRatio := waterSurface / referenceSurface
	perimeterRatio := perimeter / referencePerimeter
	volumeRatio := waterVolume / referenceVolume
	areaRatio := finishingArea / referenceArea

	// Materials track surface and volume, works track finishing area, and
	// equipment is mostly a fixed set regardless of pool size.
	materialsScale := 0.4*surfaceRatio + 0.4*volumeRatio + 0.2*perimeterRatio
	worksScale := 0.5*areaRatio + 0.3*volumeRatio + 0.2*perimeterRatio
	equipmentScale := 0.2*volumeRatio + 0.1*perimeterRatio + 0.7

	equipmentItems := []models.KPItem{
		{Name: "Фильтрационная установка Hayward PWL D611 81073 (14m3/h, верх)", Unit: "шт.", Qty: 1, Price: 79975.00},
		{Name: "Скиммер под лайнер Aquaviva Wide EM0020V", Unit: "шт.", Qty: math.Max(1, math.Round(perimeterRatio)), Price: 9115.00},
		{Name: "Форсунка стеновая под лайнер Aquaviva EM4414 (50 мм/2\" сопло \"круг\", латунные вставки", Unit: "шт.", Qty: math.Max(2, math.Round(perimeterRatio*2)), Price: 1979.00},
		{Name: "Слив донный под лайнер Aquaviva EM2837", Unit: "шт.", Qty: 1, Price: 4727.00},
		{Name: "Прожектор светодиодный Aquaviva LED003 546LED (36 Вт) White", Unit: "шт.", Qty: 2, Price: 26129.00},
		{Name: "Трансформатор Aquant 105 Вт-12В", Unit: "шт.", Qty: 1, Price: 6256.00},
		{Name: "Дозовая коробка Aquaviva EM2823", Unit: "шт.", Qty: 2, Price: 1078.00},
		{Name: "Песок кварцевый 25кг Aquaviva 0,5-0,8 мм", Unit: "шт.", Qty: 6, Price: 1152.00},
		{Name: "Набор химии для запуска бассейна", Unit: "компл", Qty: 1, Price: 12318.00},
		{Name: "Набор для ухода за бассейном", Unit: "компл", Qty: 1, Price: 17580.00},
		{Name: "Инсталляция (трубы, краны, фитинги)", Unit: "компл", Qty: 1, Price: 102000.00},
		{Name: "Щит Электра контроля", Unit: "компл", Qty: 1, Price: 48000.00},
		{Name: "Теплообменник Elecro G2 HE 49 кВт (титан)", Unit: "шт.", Qty: 1, Price: 84800.00},
		{Name: "Теплообменник Elecro 18 кВт Space Heater (пластик)", Unit: "шт.", Qty: 1, Price: 33200.00},
		{Name: "Установка обеззараживания Sonda Salt 20", Unit: "шт.", Qty: 1, Price: 139000.00},
		{Name: "Автоматическая станция контроля и дозирования Bayrol Pool Manager PRO", Unit: "шт.", Qty: 1, Price: 186000.00},
		{Name: "Монтаж и наладка оборудования, запуск", Unit: "услуга", Qty: 1, Price: 186000.00},
	}

	materialsItems := []models.KPItem{
		{Name: "Выемка грунта под бассейн механизированным способом", Unit: "м3", Qty: math.Round(122 * volumeRatio), Price: 400.00},
		{Name: "Вывоз чистого грунта с территории участка", Unit: "КамАЗ", Qty: math.Max(1, math.Round(15*volumeRatio)), Price: 6500.00},
		{Name: "Песок по факту с доставкой 6 м3", Unit: "шт.", Qty: math.Max(1, math.Round(volumeRatio)), Price: 7600.00},
		{Name: "Щебень по факту с доставкой 10 т", Unit: "шт.", Qty: math.Max(1, math.Round(volumeRatio)), Price: 9700.00},
		{Name: "Бетон М200 для подбетонки с доставкой", Unit: "м3", Qty: round1(3.6 * surfaceRatio), Price: 5750.00},
		{Name: "Бетон М300 для чаши бассейна с доставкой", Unit: "м3", Qty: round1(14.6 * volumeRatio), Price: 6650.00},
		{Name: "Арматура диаметром 10 мм", Unit: "т", Qty: round1(1.8 * areaRatio), Price: 65000.00},
	}

	worksItems := []models.KPItem{
		{Name: "Разметка бассейна для техники, нивелировка, привязка к территории по всем этапам работ", Unit: "м2", Qty: math.Round(waterSurface * 1.7), Price: 600.00},
		{Name: "Вязка арматуры для чаши бассейна", Unit: "м2", Qty: math.Round(finishingArea), Price: 1750.00},
		{Name: "Устройство опалубки с применением гидрофобной фанеры", Unit: "м2", Qty: math.Round(wallArea * 2.2), Price: 550.00},
		{Name: "Приемка и заливка бетоном М200 подбетонки", Unit: "м3", Qty: round1(3.6 * surfaceRatio), Price: 1200.00},
		{Name: "Приемка и заливка бетоном М300 чаши", Unit: "м3", Qty: round1(14.6 * volumeRatio), Price: 3500.00},
		{Name: "Разгрузка и подноска строительных материалов", Unit: "услуга", Qty: 1, Price: 30000.00},
	}

	equipmentTotal := scaleTotal(profile.Costs.EquipmentTotal, equipmentScale)
	materialsTotal := scaleTotal(profile.Costs.MaterialsTotal, materialsScale)
	worksTotal := scaleTotal(profile.Costs.WorksTotal, worksScale)

	return models.KPItems{
		EquipmentItems: equipmentItems,
		EquipmentTotal: equipmentTotal,
		MaterialsItems: materialsItems,
		MaterialsTotal: materialsTotal,
		WorksItems:     worksItems,
		WorksTotal:     worksTotal,
		TotalCost:      equipmentTotal + materialsTotal + worksTotal,
	}
}

// scaleTotal multiplies a reference total by a scale factor, rounding to
// whole rubles.
func scaleTotal(reference, scale float64) float64 {
	v, _ := decimal.NewFromFloat(reference).
		Mul(decimal.NewFromFloat(scale)).
		Round(0).
		Float64()
	return v
}
