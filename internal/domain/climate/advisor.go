// Package climate annotates recommendations with environmental advisories.
// Severity is a pure step function of the UV risk level; the bilingual
// strings attached to a warning are data keyed by severity, never logic.
package climate

// Context carries the environmental inputs considered by the advisor.
// A zero Context is not meaningful; use DefaultContext when the caller
// supplies nothing.
type Context struct {
	// UVIndex is the WHO UV index, 0–11+.
	UVIndex int `json:"uvIndex"`

	// Temperature in degrees Celsius.
	Temperature float64 `json:"temperature"`

	// Humidity as relative percentage.
	Humidity float64 `json:"humidity"`
}

// DefaultContext is the temperate-season fallback applied when a request
// carries no climate data and no operator override is configured.
func DefaultContext() Context {
	return Context{UVIndex: 3, Temperature: 18.0, Humidity: 55.0}
}

// Severity grades a warning.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// RiskLevel buckets the UV index into the 0–5 scale carried in warnings.
//
//	UV index  0      → 0
//	UV index  1–2    → 1
//	UV index  3–5    → 2
//	UV index  6–7    → 3
//	UV index  8–10   → 4
//	UV index  11+    → 5
func RiskLevel(uvIndex int) int {
	switch {
	case uvIndex <= 0:
		return 0
	case uvIndex <= 2:
		return 1
	case uvIndex <= 5:
		return 2
	case uvIndex <= 7:
		return 3
	case uvIndex <= 10:
		return 4
	default:
		return 5
	}
}

// SeverityForRisk maps a 0–5 risk level to a Severity:
// 0–1 low, 2–3 medium, 4 high, 5 critical.
func SeverityForRisk(risk int) Severity {
	switch {
	case risk <= 1:
		return SeverityLow
	case risk <= 3:
		return SeverityMedium
	case risk == 4:
		return SeverityHigh
	default:
		return SeverityCritical
	}
}

// LocalizedText is a ko/en string pair.
type LocalizedText struct {
	Ko string `json:"ko"`
	En string `json:"en"`
}

// Warning is the severity-graded advisory attached to a recommendation
// response.  At most one warning is emitted per call.
type Warning struct {
	Show           bool          `json:"show"`
	Severity       Severity      `json:"severity"`
	UVRiskLevel    int           `json:"uvRiskLevel"`
	Title          LocalizedText `json:"title"`
	Message        LocalizedText `json:"message"`
	Recommendation LocalizedText `json:"recommendation"`
}

// warningText is the fixed bilingual string table.  Lookup branches on
// severity and nothing else.
var warningText = map[Severity]struct {
	title, message, recommendation LocalizedText
}{
	SeverityLow: {
		title:          LocalizedText{Ko: "자외선 참고", En: "UV Notice"},
		message:        LocalizedText{Ko: "현재 자외선 지수가 낮은 편입니다.", En: "The current UV index is low."},
		recommendation: LocalizedText{Ko: "시술 후 기본적인 자외선 차단제를 사용하세요.", En: "Apply basic sunscreen after treatment."},
	},
	SeverityMedium: {
		title:          LocalizedText{Ko: "자외선 주의", En: "UV Caution"},
		message:        LocalizedText{Ko: "광과민성 시술 후 자외선 노출에 주의가 필요합니다.", En: "Photosensitive treatments require care with UV exposure."},
		recommendation: LocalizedText{Ko: "외출 시 SPF50+ 차단제를 바르고 모자를 착용하세요.", En: "Wear SPF50+ sunscreen and a hat when outdoors."},
	},
	SeverityHigh: {
		title:          LocalizedText{Ko: "자외선 경고", En: "UV Warning"},
		message:        LocalizedText{Ko: "자외선 지수가 높아 광과민성 시술 부위에 색소침착 위험이 있습니다.", En: "High UV levels risk pigmentation on photosensitive treatment areas."},
		recommendation: LocalizedText{Ko: "시술 후 1주일간 한낮 외출을 피하고 차단제를 2시간마다 덧바르세요.", En: "Avoid midday sun for a week after treatment and reapply sunscreen every two hours."},
	},
	SeverityCritical: {
		title:          LocalizedText{Ko: "자외선 위험", En: "UV Danger"},
		message:        LocalizedText{Ko: "극심한 자외선으로 광과민성 시술의 부작용 위험이 매우 높습니다.", En: "Extreme UV levels pose a severe side-effect risk for photosensitive treatments."},
		recommendation: LocalizedText{Ko: "시술 일정 조정을 권장합니다. 불가피하면 야외 활동을 전면 제한하세요.", En: "Consider rescheduling the treatment. If unavoidable, avoid all outdoor activity."},
	},
}

// Advise evaluates the climate context against the presence of
// photosensitive recommendations.  It returns exactly one warning with
// Show=true when a photosensitive treatment is present and the UV risk
// level is non-zero; otherwise it returns ok=false and the warning may be
// omitted from the response entirely.
func Advise(ctx Context, hasPhotosensitive bool) (Warning, bool) {
	risk := RiskLevel(ctx.UVIndex)
	if !hasPhotosensitive || risk == 0 {
		return Warning{}, false
	}

	sev := SeverityForRisk(risk)
	text := warningText[sev]
	return Warning{
		Show:           true,
		Severity:       sev,
		UVRiskLevel:    risk,
		Title:          text.title,
		Message:        text.message,
		Recommendation: text.recommendation,
	}, true
}
