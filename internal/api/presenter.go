package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	app "leak-watch/internal/application"
	"leak-watch/internal/domain/entity"
	"leak-watch/internal/domain/port"
	"leak-watch/internal/lgr"
)

const (
	msgTitle         = "🚰 PUMP LEAK MONITOR - ROBOFLOW HOSTED INFERENCE"
	msgConnecting    = "🔗 Connecting to Roboflow..."
	msgConnected     = "✅ Connected to model version %d"
	msgTesting       = "🧪 TESTING %d IMAGES..."
	msgImageHeader   = "🧪 TEST %d/%d: %s"
	msgAnalyzing     = "🔍 Analyzing with model version %d..."
	msgFound         = "✅ Found %d detection(s)"
	msgDetected      = "   🎯 Detected: %s (%.1f%% confidence)"
	msgImageError    = "❌ Error testing %s: %v"
	msgNormalStatus  = "✅ Status: Normal operation - no leaks detected"
	msgAlertHeader   = "🚨 CHAINSYNC ALERT TRIGGERED:"
	msgSummaryHeader = "🎉 COMPLETE ROBOFLOW + CHAINSYNC INTEGRATION DEMO"
	msgPlatformTitle = "🏭 CHAINSYNC PLATFORM INTEGRATION SUMMARY:"
	msgAIHeader      = "🤖 AI BRIEFING:"
	msgStatusHeader  = "✅ ENTERPRISE INTEGRATION STATUS:"
	msgDoneHeader    = "🎯 LEAK MONITOR RUN COMPLETE"
)

var enterpriseStatus = []string{
	"   🔗 Roboflow Computer Vision: OPERATIONAL",
	"   🏭 ChainSync Alert System: INTEGRATED",
	"   🚨 Emergency Response: AUTOMATED",
	"   📋 Regulatory Compliance: DOCUMENTED",
	"   💰 Business ROI: QUANTIFIED",
	"   📈 Market Opportunity: IDENTIFIED",
}

var closingLines = []string{
	"✅ COMPUTER VISION: Trained leak detection model from scratch",
	"✅ ENTERPRISE INTEGRATION: Connected to existing ChainSync platform",
	"✅ REAL-WORLD APPLICATION: Water treatment plant monitoring",
	"✅ AUTOMATED RESPONSE: Emergency coordination workflows",
	"✅ BUSINESS VALUE: $25K+ savings per prevented leak",
	"✅ SCALABILITY: Architecture ready for 16,000+ facilities",
}

// Presenter выводит ход запуска и итоги в консоль
type Presenter struct {
	out     io.Writer
	heading *color.Color
	good    *color.Color
	bad     *color.Color
	alert   *color.Color

	model entity.ModelRef
	total int
}

// NewPresenter создаёт консольный вывод. noColor отключает ANSI-цвета.
func NewPresenter(out io.Writer, noColor bool) *Presenter {
	p := &Presenter{
		out:     out,
		heading: color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen),
		bad:     color.New(color.FgRed),
		alert:   color.New(color.FgRed, color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{p.heading, p.good, p.bad, p.alert} {
			c.DisableColor()
		}
	}
	return p
}

// Start печатает заголовок до подключения к модели
func (p *Presenter) Start(model entity.ModelRef, images int) {
	p.model = model
	p.total = images
	p.heading.Fprintln(p.out, msgTitle)
	p.printf("Using: Version %d, JSON parsing for class names\n", model.Version)
	p.rule(70)
	p.println(msgConnecting)
}

// Connected вызывается после разрешения версии модели
func (p *Presenter) Connected(model entity.ModelRef) {
	p.model = model
	p.good.Fprintf(p.out, msgConnected+"\n", model.Version)
	p.printf("\n"+msgTesting+"\n", p.total)
	p.rule(70)
}

// ImageStarted печатает заголовок блока изображения
func (p *Presenter) ImageStarted(index, total int, imageName string) {
	p.heading.Fprintf(p.out, "\n"+msgImageHeader+"\n", index, total, imageName)
	p.println(strings.Repeat("-", 50))
	p.printf(msgAnalyzing+"\n", p.model.Version)
}

// ImageFinished печатает рамки и счётчики или ошибку
func (p *Presenter) ImageFinished(result entity.ImageResult) {
	if result.Failed() {
		p.bad.Fprintf(p.out, msgImageError+"\n", result.Image, result.Err)
		return
	}

	counts := result.Tally()
	p.printf(msgFound+"\n", counts.Total())
	for _, d := range counts.Detections {
		p.printf(msgDetected+"\n", d.Class, d.Confidence*100)
	}

	p.println("📋 Image Results:")
	p.printf("   • Leaked pumps: %d\n", counts.Leaked)
	p.printf("   • Normal pumps: %d\n", counts.Normal)
	p.printf("   • Total detections: %d\n", counts.Total())

	if counts.Leaked == 0 {
		p.good.Fprintln(p.out, "\n"+msgNormalStatus)
	}
}

// Publish имитирует отправку оповещения: печатает его и пишет в лог.
func (p *Presenter) Publish(ctx context.Context, alert entity.Alert) error {
	p.alert.Fprintln(p.out, "\n"+msgAlertHeader)
	p.printf("   • Severity: %s\n", alert.Severity)
	p.printf("   • Facility: %s\n", alert.FacilityID)
	p.printf("   • Message: %s\n", alert.Message)
	p.printf("   • Risk Score: %d/10\n", alert.RiskScore)
	p.printf("   • Action: %s\n", alert.Action)
	p.printf("   • Response Time: %s\n", alert.ResponseTime)

	lgr.FromContext(ctx).InfoContext(ctx, "alert payload", slog.Any("payload", alert))
	return nil
}

// Report печатает итоги запуска
func (p *Presenter) Report(report *app.RunReport) error {
	s := report.Summary

	p.heading.Fprintln(p.out, "\n"+msgSummaryHeader)
	p.rule(70)
	p.printf("✅ Model Version: %d (WORKING)\n", p.model.Version)
	p.printf("✅ Images Successfully Analyzed: %d\n", s.ImagesAnalyzed)
	if s.ImagesFailed > 0 {
		p.bad.Fprintf(p.out, "❌ Images Failed: %d\n", s.ImagesFailed)
	}
	p.printf("🚨 Total Leaks Detected: %d\n", s.TotalLeaks)
	p.printf("✅ Total Normal Pumps: %d\n", s.TotalNormal)
	p.printf("📊 Total Equipment Monitored: %d\n", s.TotalEquipment())

	if s.HasEquipment() {
		body, err := MarshalSummary(s)
		if err != nil {
			return err
		}

		p.heading.Fprintln(p.out, "\n"+msgPlatformTitle)
		p.rule(60)
		p.println(string(body))

		if report.Description != nil && report.Description.Text != "" {
			p.heading.Fprintln(p.out, "\n"+msgAIHeader)
			p.println(report.Description.Text)
		}

		p.println("\n" + msgStatusHeader)
		for _, line := range enterpriseStatus {
			p.println(line)
		}
		p.printf("   ⚠️  Current Risk Level: %s\n", s.Facility.OverallSeverity)
	}

	p.heading.Fprintln(p.out, "\n"+msgDoneHeader)
	p.rule(70)
	for _, line := range closingLines {
		p.println(line)
	}
	return nil
}

// Fail печатает ошибку, прервавшую весь запуск
func (p *Presenter) Fail(err error) {
	p.bad.Fprintf(p.out, "❌ Error: %v\n", err)
}

// MarshalSummary сериализует итог с отступом в два пробела, не экранируя HTML-символы
func MarshalSummary(s *entity.RunSummary) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (p *Presenter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Presenter) println(s string) {
	fmt.Fprintln(p.out, s)
}

func (p *Presenter) rule(n int) {
	fmt.Fprintln(p.out, strings.Repeat("=", n))
}

var (
	_ app.RunObserver     = (*Presenter)(nil)
	_ port.AlertPublisher = (*Presenter)(nil)
)
