package services

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

const (
	calendarWidth   = 1400
	calendarHeader  = 120
	calendarDayBar  = 48
	calendarRowH    = 180
	calendarPadding = 8
)

// CalendarService renders a printable month-view PNG of a church's events.
// Secretaries pin these on the announcement board.
type CalendarService interface {
	RenderMonth(ctx context.Context, churchID uuid.UUID, year int, month time.Month) ([]byte, error)
}

type calendarService struct {
	log    *logger.Logger
	events EventService

	titleFace font.Face
	bodyFace  font.Face
}

func NewCalendarService(log *logger.Logger, events EventService) (CalendarService, error) {
	serviceLog := log.With("service", "CalendarService")

	svc := &calendarService{
		log:    serviceLog,
		events: events,
	}

	// Optional: without a font file gg falls back to its built-in face,
	// which is legible if plain.
	if fontPath := strings.TrimSpace(os.Getenv("CALENDAR_FONT")); fontPath != "" {
		titleFace, err := loadFontFace(fontPath, 42)
		if err != nil {
			return nil, fmt.Errorf("could not load calendar font: %w", err)
		}
		bodyFace, err := loadFontFace(fontPath, 18)
		if err != nil {
			return nil, fmt.Errorf("could not load calendar font: %w", err)
		}
		svc.titleFace = titleFace
		svc.bodyFace = bodyFace
	}

	return svc, nil
}

func loadFontFace(path string, points float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(raw)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}

var dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (s *calendarService) RenderMonth(ctx context.Context, churchID uuid.UUID, year int, month time.Month) ([]byte, error) {
	if year < 1900 || year > 3000 {
		return nil, fmt.Errorf("invalid year %d", year)
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	events, err := s.events.List(ctx, churchID, &first, &next, 500)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	byDay := make(map[int][]*domain.Event)
	for _, ev := range events {
		d := ev.StartsAt.UTC().Day()
		byDay[d] = append(byDay[d], ev)
	}

	// Leading blanks before day 1, Monday-first.
	lead := (int(first.Weekday()) + 6) % 7
	daysInMonth := next.AddDate(0, 0, -1).Day()
	rows := (lead + daysInMonth + 6) / 7

	height := calendarHeader + calendarDayBar + rows*calendarRowH
	dc := gg.NewContext(calendarWidth, height)

	dc.SetColor(color.White)
	dc.Clear()

	// Header
	dc.SetRGB(0.13, 0.17, 0.23)
	dc.DrawRectangle(0, 0, calendarWidth, calendarHeader)
	dc.Fill()
	if s.titleFace != nil {
		dc.SetFontFace(s.titleFace)
	}
	dc.SetColor(color.White)
	dc.DrawStringAnchored(fmt.Sprintf("%s %d", month.String(), year), calendarWidth/2, calendarHeader/2, 0.5, 0.5)

	// Weekday bar
	cellW := float64(calendarWidth) / 7
	if s.bodyFace != nil {
		dc.SetFontFace(s.bodyFace)
	}
	dc.SetRGB(0.25, 0.3, 0.38)
	dc.DrawRectangle(0, calendarHeader, calendarWidth, calendarDayBar)
	dc.Fill()
	dc.SetColor(color.White)
	for i, name := range dayNames {
		x := float64(i)*cellW + cellW/2
		dc.DrawStringAnchored(name, x, calendarHeader+calendarDayBar/2, 0.5, 0.5)
	}

	// Day cells
	gridTop := float64(calendarHeader + calendarDayBar)
	for day := 1; day <= daysInMonth; day++ {
		slot := lead + day - 1
		row := slot / 7
		col := slot % 7
		x := float64(col) * cellW
		y := gridTop + float64(row)*calendarRowH

		dc.SetRGB(0.85, 0.85, 0.85)
		dc.DrawRectangle(x, y, cellW, calendarRowH)
		dc.Stroke()

		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(fmt.Sprintf("%d", day), x+calendarPadding+8, y+calendarPadding+12, 0.5, 0.5)

		for i, ev := range byDay[day] {
			if i >= 5 {
				dc.SetRGB(0.45, 0.45, 0.45)
				dc.DrawString(fmt.Sprintf("+%d more", len(byDay[day])-i), x+calendarPadding, y+40+float64(i)*24)
				break
			}
			label := fmt.Sprintf("%s %s", ev.StartsAt.UTC().Format("15:04"), truncateLabel(ev.Title, 24))
			dc.SetRGB(0.1, 0.35, 0.6)
			dc.DrawString(label, x+calendarPadding, y+40+float64(i)*24)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode calendar png: %w", err)
	}
	return buf.Bytes(), nil
}

func truncateLabel(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
