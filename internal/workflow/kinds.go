package workflow

import (
	"errors"
	"regexp"
	"strings"

	"smartgov-assistant/internal/model"
)

var (
	phoneRe = regexp.MustCompile(`^\d{10}$`)
	appIDRe = regexp.MustCompile(`^(?i)24EXG\d{6,}$`)
)

// Validator error strings double as the user-facing retry message, so they
// are localized here rather than in templates.go.
func invalidMsg(lang model.Language, en, hi, ne string) error {
	switch lang {
	case model.LanguageHindi:
		return errors.New(hi)
	case model.LanguageNepali:
		return errors.New(ne)
	default:
		return errors.New(en)
	}
}

func minLen(n int, en, hi, ne string) func(string, model.Language) (string, error) {
	return func(raw string, lang model.Language) (string, error) {
		if len(strings.TrimSpace(raw)) < n {
			return "", invalidMsg(lang, en, hi, ne)
		}
		return strings.TrimSpace(raw), nil
	}
}

func validatePhone(raw string, lang model.Language) (string, error) {
	if !phoneRe.MatchString(strings.TrimSpace(raw)) {
		return "", invalidMsg(lang,
			"Please provide a valid 10-digit mobile number.",
			"कृपया मान्य 10-अंकीय मोबाइल नंबर दें।",
			"कृपया मान्य 10-अंकको मोबाइल नम्बर दिनुहोस्।")
	}
	return strings.TrimSpace(raw), nil
}

// damageTypes maps the menu number to the stored damage name.
var damageTypes = map[model.Language]map[string]string{
	model.LanguageEnglish: {"1": "Flood", "2": "Landslide", "3": "Earthquake", "4": "Fire", "5": "Storm/Hailstorm", "6": "Other"},
	model.LanguageHindi:   {"1": "बाढ़", "2": "भूस्खलन", "3": "भूकंप", "4": "आग", "5": "तूफान/ओलावृष्टि", "6": "अन्य"},
	model.LanguageNepali:  {"1": "बाढी", "2": "पहिरो", "3": "भूकम्प", "4": "आगो", "5": "आँधी/असिना", "6": "अन्य"},
}

func validateDamageType(raw string, lang model.Language) (string, error) {
	names, ok := damageTypes[lang]
	if !ok {
		names = damageTypes[model.LanguageEnglish]
	}
	if name, ok := names[strings.TrimSpace(raw)]; ok {
		return name, nil
	}
	return "", invalidMsg(lang,
		"Please enter a number between 1 and 6.",
		"कृपया 1 से 6 के बीच का नंबर दर्ज करें।",
		"कृपया 1 देखि 6 बीचको नम्बर प्रविष्ट गर्नुहोस्।")
}

func validateAppID(raw string, lang model.Language) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if !appIDRe.MatchString(id) {
		return "", invalidMsg(lang,
			"Please enter a valid application ID (format 24EXG followed by digits).",
			"कृपया मान्य आवेदन ID दर्ज करें (24EXG से शुरू)।",
			"कृपया मान्य आवेदन ID प्रविष्ट गर्नुहोस् (24EXG बाट सुरु)।")
	}
	return id, nil
}

// ReliefSpec is the ex-gratia application form: ten mandatory fields, an
// optional location, then a confirmation step.
func ReliefSpec() KindSpec {
	nameErr := func(what string) []string {
		return []string{
			"Please provide a valid " + what + " (at least 2 characters).",
			"कृपया मान्य " + what + " प्रदान करें।",
			"कृपया मान्य " + what + " प्रदान गर्नुहोस्।",
		}
	}
	n := nameErr("name")
	f := nameErr("father's name")
	v := nameErr("village name")

	nonEmpty := func(what string) func(string, model.Language) (string, error) {
		return minLen(1,
			"Please provide a valid "+what+".",
			"कृपया मान्य "+what+" प्रदान करें।",
			"कृपया मान्य "+what+" प्रदान गर्नुहोस्।")
	}

	return KindSpec{
		Kind:    KindRelief,
		Confirm: true,
		Fields: []FieldSpec{
			{Name: "applicant_name", Validate: minLen(2, n[0], n[1], n[2])},
			{Name: "father_name", Validate: minLen(2, f[0], f[1], f[2])},
			{Name: "village", Validate: minLen(2, v[0], v[1], v[2])},
			{Name: "contact_number", Validate: validatePhone},
			{Name: "ward", Validate: nonEmpty("ward number")},
			{Name: "gpu", Validate: nonEmpty("GPU number")},
			{Name: "khatiyan_no", Validate: nonEmpty("Khatiyan number")},
			{Name: "plot_no", Validate: nonEmpty("Plot number")},
			{Name: "damage_type", Validate: validateDamageType},
			{Name: "damage_description", Validate: minLen(2,
				"Please describe the damage.",
				"कृपया क्षति का विवरण दें।",
				"कृपया क्षतिको विवरण दिनुहोस्।")},
			{Name: "location", Skippable: true, WantsLocation: true, Validate: minLen(3,
				"Please share your location, type a nearby landmark, or send 'skip'.",
				"कृपया अपना स्थान साझा करें, नज़दीकी स्थान लिखें, या 'skip' भेजें।",
				"कृपया आफ्नो स्थान साझा गर्नुहोस्, नजिकको ठाउँ लेख्नुहोस्, वा 'skip' पठाउनुहोस्।")},
		},
	}
}

// StatusSpec collects one application ID and looks it up on submit.
func StatusSpec() KindSpec {
	return KindSpec{
		Kind:    KindStatus,
		Confirm: false,
		Fields: []FieldSpec{
			{Name: "application_id", Validate: validateAppID},
		},
	}
}

// FeedbackSpec collects one free-text message.
func FeedbackSpec() KindSpec {
	return KindSpec{
		Kind:    KindFeedback,
		Confirm: false,
		Fields: []FieldSpec{
			{Name: "feedback_text", Validate: minLen(3,
				"Please type a few words of feedback.",
				"कृपया कुछ शब्दों में प्रतिक्रिया लिखें।",
				"कृपया केही शब्दमा प्रतिक्रिया लेख्नुहोस्।")},
		},
	}
}
