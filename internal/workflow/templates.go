package workflow

import (
	"fmt"
	"strings"

	"smartgov-assistant/internal/model"
)

// uiTexts holds the fixed per-language strings around field prompts.
type uiTexts struct {
	stepHeader   string
	cancelled    string
	restart      string
	confirmRetry string
	submitFailed string
	completed    map[Kind]string
}

var englishTexts = uiTexts{
	stepHeader:   "Step %d/%d: %s",
	cancelled:    "Application cancelled. You can start a new one anytime by typing 'apply'.",
	restart:      "Okay, let's correct the details from the beginning.",
	confirmRetry: "Please answer 'yes' to submit or 'no' to re-enter the details.",
	submitFailed: "We could not record your application right now. Your reference %s is saved locally - please reply 'yes' in a few minutes to retry, or 'cancel' to stop.",
	completed: map[Kind]string{
		KindRelief:   "Your ex-gratia application has been submitted.\nApplication ID: %s\nYou will be contacted within 7-10 working days.",
		KindStatus:   "%s",
		KindFeedback: "Thank you, your feedback has been recorded (ref %s).",
	},
}

var hindiTexts = uiTexts{
	stepHeader:   "चरण %d/%d: %s",
	cancelled:    "आवेदन रद्द कर दिया गया। आप कभी भी 'apply' लिखकर नया आवेदन शुरू कर सकते हैं।",
	restart:      "ठीक है, शुरुआत से जानकारी सुधारते हैं।",
	confirmRetry: "कृपया जमा करने के लिए 'yes' या दोबारा भरने के लिए 'no' लिखें।",
	submitFailed: "अभी आपका आवेदन दर्ज नहीं हो सका। आपका संदर्भ %s सुरक्षित है - कुछ मिनट बाद 'yes' लिखकर पुनः प्रयास करें।",
	completed: map[Kind]string{
		KindRelief:   "आपका Ex-Gratia आवेदन जमा हो गया है।\nआवेदन ID: %s\n7-10 कार्य दिवसों में आपसे संपर्क किया जाएगा।",
		KindStatus:   "%s",
		KindFeedback: "धन्यवाद, आपकी प्रतिक्रिया दर्ज हो गई है (संदर्भ %s)।",
	},
}

var nepaliTexts = uiTexts{
	stepHeader:   "चरण %d/%d: %s",
	cancelled:    "आवेदन रद्द गरियो। तपाईं जहिले पनि 'apply' लेखेर नयाँ आवेदन सुरु गर्न सक्नुहुन्छ।",
	restart:      "हुन्छ, सुरुदेखि जानकारी सच्याऔं।",
	confirmRetry: "कृपया बुझाउन 'yes' वा फेरि भर्न 'no' लेख्नुहोस्।",
	submitFailed: "अहिले तपाईंको आवेदन दर्ता हुन सकेन। तपाईंको सन्दर्भ %s सुरक्षित छ - केही मिनेटपछि 'yes' लेखेर फेरि प्रयास गर्नुहोस्।",
	completed: map[Kind]string{
		KindRelief:   "तपाईंको Ex-Gratia आवेदन बुझाइयो।\nआवेदन ID: %s\n7-10 कार्य दिनभित्र तपाईंलाई सम्पर्क गरिनेछ।",
		KindStatus:   "%s",
		KindFeedback: "धन्यवाद, तपाईंको प्रतिक्रिया दर्ता भयो (सन्दर्भ %s)।",
	},
}

func textsFor(lang model.Language) uiTexts {
	switch lang {
	case model.LanguageHindi:
		return hindiTexts
	case model.LanguageNepali:
		return nepaliTexts
	default:
		return englishTexts
	}
}

// stageQuestions maps field name to its question, per language. Field
// names are unique across kinds so one table serves all of them.
var stageQuestions = map[model.Language]map[string]string{
	model.LanguageEnglish: {
		"applicant_name":     "Please provide your full name:",
		"father_name":        "Please provide your father's name:",
		"village":            "Please provide your village name:",
		"contact_number":     "Please provide your 10-digit mobile number:",
		"ward":               "Please provide your ward number:",
		"gpu":                "Please provide your GPU number:",
		"khatiyan_no":        "Please provide your Khatiyan number:",
		"plot_no":            "Please provide your Plot number:",
		"damage_type":        "Select damage type:\n1. Flood\n2. Landslide\n3. Earthquake\n4. Fire\n5. Storm/Hailstorm\n6. Other\n\nEnter number (1-6):",
		"damage_description": "Please describe the damage in detail:",
		"location":           "Share your location, or type 'skip':",
		"application_id":     "Please enter your application ID (e.g. 24EXG1234567):",
		"feedback_text":      "Please type your feedback or complaint:",
	},
	model.LanguageHindi: {
		"applicant_name":     "कृपया अपना पूरा नाम प्रदान करें:",
		"father_name":        "कृपया अपने पिता का नाम प्रदान करें:",
		"village":            "कृपया अपने गांव का नाम प्रदान करें:",
		"contact_number":     "कृपया अपना 10-अंकीय मोबाइल नंबर प्रदान करें:",
		"ward":               "कृपया अपना वार्ड नंबर प्रदान करें:",
		"gpu":                "कृपया अपना GPU नंबर प्रदान करें:",
		"khatiyan_no":        "कृपया अपना खतियान नंबर प्रदान करें:",
		"plot_no":            "कृपया अपना प्लॉट नंबर प्रदान करें:",
		"damage_type":        "क्षति का प्रकार चुनें:\n1. बाढ़\n2. भूस्खलन\n3. भूकंप\n4. आग\n5. तूफान/ओलावृष्टि\n6. अन्य\n\nनंबर दर्ज करें (1-6):",
		"damage_description": "कृपया क्षति का विस्तृत विवरण दें:",
		"location":           "अपना स्थान साझा करें, या 'skip' लिखें:",
		"application_id":     "कृपया अपना आवेदन ID दर्ज करें (जैसे 24EXG1234567):",
		"feedback_text":      "कृपया अपनी प्रतिक्रिया या शिकायत लिखें:",
	},
	model.LanguageNepali: {
		"applicant_name":     "कृपया आफ्नो पूरा नाम प्रदान गर्नुहोस्:",
		"father_name":        "कृपया आफ्नो बुबाको नाम प्रदान गर्नुहोस्:",
		"village":            "कृपया आफ्नो गाउँको नाम प्रदान गर्नुहोस्:",
		"contact_number":     "कृपया आफ्नो 10-अंकको मोबाइल नम्बर प्रदान गर्नुहोस्:",
		"ward":               "कृपया आफ्नो वार्ड नम्बर प्रदान गर्नुहोस्:",
		"gpu":                "कृपया आफ्नो GPU नम्बर प्रदान गर्नुहोस्:",
		"khatiyan_no":        "कृपया आफ्नो खतियान नम्बर प्रदान गर्नुहोस्:",
		"plot_no":            "कृपया आफ्नो प्लट नम्बर प्रदान गर्नुहोस्:",
		"damage_type":        "क्षतिको प्रकार छान्नुहोस्:\n1. बाढी\n2. पहिरो\n3. भूकम्प\n4. आगो\n5. आँधी/असिना\n6. अन्य\n\nनम्बर प्रविष्ट गर्नुहोस् (1-6):",
		"damage_description": "कृपया क्षतिको विस्तृत विवरण दिनुहोस्:",
		"location":           "आफ्नो स्थान पठाउनुहोस्, वा 'skip' लेख्नुहोस्:",
		"application_id":     "कृपया आफ्नो आवेदन ID प्रविष्ट गर्नुहोस् (जस्तै 24EXG1234567):",
		"feedback_text":      "कृपया आफ्नो प्रतिक्रिया वा गुनासो लेख्नुहोस्:",
	},
}

func (m *Machine) fieldPrompt() string {
	field := m.spec.Fields[m.fieldIdx]
	questions, ok := stageQuestions[m.lang]
	if !ok {
		questions = stageQuestions[model.LanguageEnglish]
	}
	question, ok := questions[field.Name]
	if !ok {
		question = stageQuestions[model.LanguageEnglish][field.Name]
	}
	return fmt.Sprintf(textsFor(m.lang).stepHeader, m.fieldIdx+1, len(m.spec.Fields), question)
}

// confirmHeaders ask "is this correct?" above the collected summary.
var confirmHeaders = map[model.Language]string{
	model.LanguageEnglish: "Please review your information:\n\n%s\nIs this information correct? (yes/no)",
	model.LanguageHindi:   "कृपया अपनी जानकारी की समीक्षा करें:\n\n%s\nक्या यह जानकारी सही है? (yes/no)",
	model.LanguageNepali:  "कृपया आफ्नो जानकारी समीक्षा गर्नुहोस्:\n\n%s\nके यो जानकारी सही छ? (yes/no)",
}

func (m *Machine) summaryPrompt() string {
	var b strings.Builder
	for _, f := range m.spec.Fields {
		if v, ok := m.fields[f.Name]; ok {
			b.WriteString(fmt.Sprintf("%s: %s\n", f.Name, v))
		}
	}
	header, ok := confirmHeaders[m.lang]
	if !ok {
		header = confirmHeaders[model.LanguageEnglish]
	}
	return fmt.Sprintf(header, b.String())
}
