// Package weekimage рисует PNG недельной сетки персональных слотов тренера.
// Надписи латиницей: используется встроенный basicfont.
package weekimage

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/schedule"
)

const (
	imageWidth      = 1100
	imageHeight     = 720
	headerHeight    = 70
	leftLabelsWidth = 60
	legendHeight    = 40
	dayPaddingX     = 6
	minSlotHeight   = 8.0
	slotRadius      = 5.0
	shadowOffset    = 2.0
	hourPadding     = 1
	defaultMinHour  = 8
	defaultMaxHour  = 20
)

var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{60, 65, 70, 255}
	hourLabelColor = color.RGBA{110, 115, 120, 220}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor   = color.NRGBA{255, 99, 71, 90}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{225, 225, 225, 255}

	slotActiveColor   = color.RGBA{133, 193, 85, 230}
	slotInactiveColor = color.RGBA{170, 170, 170, 200}
	slotTextColor     = color.RGBA{20, 24, 28, 230}
	slotShadowColor   = color.RGBA{0, 0, 0, 25}
)

var dayLabels = map[schedule.Weekday]string{
	schedule.Monday:    "Mon",
	schedule.Tuesday:   "Tue",
	schedule.Wednesday: "Wed",
	schedule.Thursday:  "Thu",
	schedule.Friday:    "Fri",
	schedule.Saturday:  "Sat",
	schedule.Sunday:    "Sun",
}

// Options параметры картинки. Today подсвечивается, пустое значение отключает подсветку.
type Options struct {
	Title string
	Today schedule.Weekday
	Load  *schedule.Load
}

type hourRange struct {
	start int
	end   int
}

func (h hourRange) total() int {
	return h.end - h.start
}

// Render рисует слоты по дням недели и возвращает PNG
func Render(slots []*model.TrainerSlot, opts Options) ([]byte, error) {
	hours := calculateHourRange(slots)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dayWidth := float64(imageWidth-leftLabelsWidth) / float64(len(schedule.Weekdays))
	gridHeight := float64(imageHeight - headerHeight - legendHeight)
	cellHeight := gridHeight / float64(hours.total())

	drawHeader(dc, opts)
	for i, day := range schedule.Weekdays {
		x := float64(leftLabelsWidth) + float64(i)*dayWidth
		drawDayBackground(dc, x, dayWidth, gridHeight, i, day == opts.Today)
		drawDayHeader(dc, day, x, dayWidth)
	}
	drawHourGrid(dc, hours, cellHeight)

	for _, slot := range slots {
		idx := slot.DayOfWeek.Index()
		if idx < 0 {
			continue
		}
		x := float64(leftLabelsWidth) + float64(idx)*dayWidth
		drawSlot(dc, slot, x, dayWidth, hours, cellHeight)
	}
	drawLegend(dc)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode week image: %w", err)
	}
	return buf.Bytes(), nil
}

// calculateHourRange границы по часам с отступом; без слотов 08:00-20:00
func calculateHourRange(slots []*model.TrainerSlot) hourRange {
	minHour, maxHour := 24, 0
	for _, slot := range slots {
		startH := slot.StartTime.Hour()
		endH := slot.EndTime.Hour()
		if slot.EndTime.Minute() > 0 {
			endH++
		}
		minHour = min(minHour, startH)
		maxHour = max(maxHour, endH)
	}
	if minHour >= maxHour {
		return hourRange{start: defaultMinHour, end: defaultMaxHour}
	}
	return hourRange{
		start: max(minHour-hourPadding, 0),
		end:   min(maxHour+hourPadding, 24),
	}
}

func drawHeader(dc *gg.Context, opts Options) {
	title := opts.Title
	if title == "" {
		title = "Personal training slots"
	}
	dc.SetColor(textColor)
	dc.DrawString(title, 12, 22)

	if opts.Load != nil {
		summary := fmt.Sprintf("%d days/week, %.1f h total, %.1f h/day (recommended: %d days, %.0f h/day)",
			opts.Load.DaysPerWeek, opts.Load.TotalHours, opts.Load.AvgHoursPerDay,
			schedule.RecommendedDaysPerWeek, schedule.RecommendedHoursPerDay)
		dc.SetColor(hourLabelColor)
		dc.DrawString(summary, 12, 40)
	}
}

func drawDayBackground(dc *gg.Context, x, width, height float64, idx int, today bool) {
	switch {
	case today:
		dc.SetColor(todayBgColor)
	case idx%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, headerHeight, width, height)
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, day schedule.Weekday, x, width float64) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(dayLabels[day], x+width/2, headerHeight-8, 0.5, 0)
}

func drawHourGrid(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.4)
	for i := 0; i <= hours.total(); i++ {
		y := headerHeight + float64(i)*cellHeight

		dc.SetColor(hourLineColor)
		dc.DrawLine(leftLabelsWidth, y, imageWidth, y)
		dc.Stroke()

		dc.SetColor(hourLabelColor)
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hours.start+i), leftLabelsWidth-8, y, 1, 0.5)
	}
}

func drawSlot(dc *gg.Context, slot *model.TrainerSlot, x, dayWidth float64, hours hourRange, cellHeight float64) {
	startHour := float64(slot.StartTime.Hour()) + float64(slot.StartTime.Minute())/60
	endHour := float64(slot.EndTime.Hour()) + float64(slot.EndTime.Minute())/60

	y := headerHeight + (startHour-float64(hours.start))*cellHeight
	height := max((endHour-startHour)*cellHeight, minSlotHeight)
	width := dayWidth - 2*dayPaddingX
	left := x + dayPaddingX

	fill := slotActiveColor
	if !slot.IsActive {
		fill = slotInactiveColor
	}

	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(left+shadowOffset, y+2+shadowOffset, width, height-4, slotRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(left, y+2, width, height-4, slotRadius)
	dc.Fill()

	dc.SetColor(darken(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(left, y+2, width, height-4, slotRadius)
	dc.Stroke()

	dc.SetColor(slotTextColor)
	dc.DrawString(slot.StartTime.Short()+"-"+slot.EndTime.Short(), left+6, y+18)
	if height > 40 {
		dc.DrawString(fmt.Sprintf("places: %d", slot.MaxSlots), left+6, y+34)
	}
}

func drawLegend(dc *gg.Context) {
	y := float64(imageHeight - legendHeight + 14)
	x := float64(leftLabelsWidth)

	items := []struct {
		label string
		clr   color.Color
	}{
		{"active", slotActiveColor},
		{"inactive", slotInactiveColor},
	}
	for _, item := range items {
		dc.SetColor(item.clr)
		dc.DrawRoundedRectangle(x, y, 20, 14, 3)
		dc.Fill()

		dc.SetColor(textColor)
		dc.DrawString(item.label, x+28, y+11)
		x += 120
	}
}

func darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
