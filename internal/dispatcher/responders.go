package dispatcher

import (
	"fmt"

	"smartgov-assistant/internal/intent"
	"smartgov-assistant/internal/model"
	"smartgov-assistant/internal/status"
)

// replyKey names one fixed reply. Keys double as response cache prefixes.
type replyKey string

const (
	replyWelcome            replyKey = "welcome"
	replyHelp               replyKey = "help"
	replyNorms              replyKey = "norms"
	replyProcedure          replyKey = "procedure"
	replyEmergency          replyKey = "emergency"
	replyContacts           replyKey = "contacts"
	replyNothingToCancel    replyKey = "nothing-to-cancel"
	replyUnclassified       replyKey = "unclassified"
	replyUnexpectedLocation replyKey = "unexpected-location"
	replyCorrupted          replyKey = "corrupted"
)

var fixedReplies = map[replyKey]map[model.Language]string{
	replyWelcome: {
		model.LanguageEnglish: "🙏 Welcome to the SmartGov Disaster Relief Assistant!\n\nI can help you with:\n• Applying for ex-gratia relief\n• Checking your application status\n• Relief norms and procedures\n• Emergency contacts\n\nChoose an option below or just type your question.",
		model.LanguageHindi:   "🙏 SmartGov आपदा राहत सहायक में आपका स्वागत है!\n\nमैं इनमें आपकी मदद कर सकता हूं:\n• Ex-Gratia राहत के लिए आवेदन\n• आवेदन की स्थिति जांच\n• राहत मानदंड और प्रक्रिया\n• आपातकालीन संपर्क\n\nनीचे विकल्प चुनें या अपना प्रश्न लिखें।",
		model.LanguageNepali:  "🙏 SmartGov विपद् राहत सहायकमा स्वागत छ!\n\nम यी कुरामा मद्दत गर्न सक्छु:\n• Ex-Gratia राहतको लागि आवेदन\n• आवेदनको स्थिति जाँच\n• राहत मापदण्ड र प्रक्रिया\n• आपतकालीन सम्पर्क\n\nतलको विकल्प छान्नुहोस् वा आफ्नो प्रश्न लेख्नुहोस्।",
	},
	replyHelp: {
		model.LanguageEnglish: "Here is what I can do:\n\n• Type 'apply' to start an ex-gratia relief application\n• Type 'status' to check an existing application\n• Ask about relief amounts ('norms') or the procedure\n• Type 'feedback' to leave feedback\n• In an emergency, call 112 or the district control room 1077\n\nI understand English, हिंदी and नेपाली.",
		model.LanguageHindi:   "मैं यह कर सकता हूं:\n\n• Ex-Gratia आवेदन शुरू करने के लिए 'apply' लिखें\n• आवेदन की स्थिति के लिए 'status' लिखें\n• राहत राशि ('norms') या प्रक्रिया के बारे में पूछें\n• प्रतिक्रिया देने के लिए 'feedback' लिखें\n• आपातकाल में 112 या जिला नियंत्रण कक्ष 1077 पर कॉल करें\n\nमैं English, हिंदी और नेपाली समझता हूं।",
		model.LanguageNepali:  "म यो गर्न सक्छु:\n\n• Ex-Gratia आवेदन सुरु गर्न 'apply' लेख्नुहोस्\n• आवेदनको स्थितिको लागि 'status' लेख्नुहोस्\n• राहत रकम ('norms') वा प्रक्रियाको बारेमा सोध्नुहोस्\n• प्रतिक्रिया दिन 'feedback' लेख्नुहोस्\n• आपतकालमा 112 वा जिल्ला नियन्त्रण कक्ष 1077 मा फोन गर्नुहोस्\n\nम English, हिंदी र नेपाली बुझ्छु।",
	},
	replyNorms: {
		model.LanguageEnglish: "📋 Ex-Gratia Relief Norms (SDRF):\n\n🏠 House damage:\n• Fully damaged pucca house: ₹1,30,000\n• Fully damaged kutcha house: ₹1,29,200\n• Severely damaged house: ₹12,500\n• Partially damaged house: ₹6,500\n\n🌾 Agriculture:\n• Crop loss: ₹17,000 per hectare (max 2 ha)\n• Land loss: ₹47,000 per hectare\n\n🐄 Livestock loss: ₹37,500 per milch animal\n\nType 'apply' to start an application.",
		model.LanguageHindi:   "📋 Ex-Gratia राहत मानदंड (SDRF):\n\n🏠 मकान क्षति:\n• पूर्ण क्षतिग्रस्त पक्का मकान: ₹1,30,000\n• पूर्ण क्षतिग्रस्त कच्चा मकान: ₹1,29,200\n• गंभीर क्षतिग्रस्त मकान: ₹12,500\n• आंशिक क्षतिग्रस्त मकान: ₹6,500\n\n🌾 कृषि:\n• फसल हानि: ₹17,000 प्रति हेक्टेयर (अधिकतम 2 हेक्टेयर)\n• भूमि हानि: ₹47,000 प्रति हेक्टेयर\n\n🐄 पशु हानि: ₹37,500 प्रति दुधारू पशु\n\nआवेदन शुरू करने के लिए 'apply' लिखें।",
		model.LanguageNepali:  "📋 Ex-Gratia राहत मापदण्ड (SDRF):\n\n🏠 घर क्षति:\n• पूर्ण क्षतिग्रस्त पक्की घर: ₹1,30,000\n• पूर्ण क्षतिग्रस्त कच्ची घर: ₹1,29,200\n• गम्भीर क्षतिग्रस्त घर: ₹12,500\n• आंशिक क्षतिग्रस्त घर: ₹6,500\n\n🌾 कृषि:\n• बाली नोक्सान: ₹17,000 प्रति हेक्टर (अधिकतम 2 हेक्टर)\n• जग्गा नोक्सान: ₹47,000 प्रति हेक्टर\n\n🐄 पशु नोक्सान: ₹37,500 प्रति दुधालु पशु\n\nआवेदन सुरु गर्न 'apply' लेख्नुहोस्।",
	},
	replyProcedure: {
		model.LanguageEnglish: "📝 Application procedure:\n\n1. Start the application here (type 'apply') or at your GPU office\n2. Provide your personal, land and damage details\n3. The application is forwarded to the Block Development Officer\n4. Field verification within 7 days\n5. Approved relief is transferred to your bank account\n\nKeep your Khatiyan and plot numbers handy. You will get an application ID to track progress.",
		model.LanguageHindi:   "📝 आवेदन प्रक्रिया:\n\n1. यहां आवेदन शुरू करें ('apply' लिखें) या अपने GPU कार्यालय में\n2. अपनी व्यक्तिगत, भूमि और क्षति की जानकारी दें\n3. आवेदन खंड विकास अधिकारी को भेजा जाता है\n4. 7 दिनों के भीतर स्थल सत्यापन\n5. स्वीकृत राहत आपके बैंक खाते में भेजी जाती है\n\nअपना खतियान और प्लॉट नंबर तैयार रखें। प्रगति जांचने के लिए आपको आवेदन ID मिलेगा।",
		model.LanguageNepali:  "📝 आवेदन प्रक्रिया:\n\n1. यहाँ आवेदन सुरु गर्नुहोस् ('apply' लेख्नुहोस्) वा आफ्नो GPU कार्यालयमा\n2. आफ्नो व्यक्तिगत, जग्गा र क्षतिको विवरण दिनुहोस्\n3. आवेदन खण्ड विकास अधिकारीकहाँ पठाइन्छ\n4. 7 दिनभित्र स्थलगत प्रमाणीकरण\n5. स्वीकृत राहत तपाईंको बैंक खातामा पठाइन्छ\n\nआफ्नो खतियान र प्लट नम्बर तयार राख्नुहोस्। प्रगति हेर्न तपाईंलाई आवेदन ID दिइनेछ।",
	},
	replyEmergency: {
		model.LanguageEnglish: "🚨 EMERGENCY ASSISTANCE 🚨\n\nIf you are in immediate danger:\n📞 Call 112 (national emergency)\n📞 Call 1077 (district disaster control room)\n\nMove to safe ground, stay away from damaged structures and landslide zones. Rescue teams are dispatched through the control room.",
		model.LanguageHindi:   "🚨 आपातकालीन सहायता 🚨\n\nयदि आप तत्काल खतरे में हैं:\n📞 112 पर कॉल करें (राष्ट्रीय आपातकाल)\n📞 1077 पर कॉल करें (जिला आपदा नियंत्रण कक्ष)\n\nसुरक्षित स्थान पर जाएं, क्षतिग्रस्त इमारतों और भूस्खलन क्षेत्रों से दूर रहें। बचाव दल नियंत्रण कक्ष से भेजे जाते हैं।",
		model.LanguageNepali:  "🚨 आपतकालीन सहायता 🚨\n\nयदि तपाईं तत्काल खतरामा हुनुहुन्छ:\n📞 112 मा फोन गर्नुहोस् (राष्ट्रिय आपतकाल)\n📞 1077 मा फोन गर्नुहोस् (जिल्ला विपद् नियन्त्रण कक्ष)\n\nसुरक्षित ठाउँमा जानुहोस्, क्षतिग्रस्त संरचना र पहिरो क्षेत्रबाट टाढा रहनुहोस्। उद्धार टोली नियन्त्रण कक्षबाट पठाइन्छ।",
	},
	replyContacts: {
		model.LanguageEnglish: "📞 Emergency contacts:\n\n• National emergency: 112\n• District disaster control room: 1077\n• Ambulance: 108\n• Fire: 101\n• Police: 100\n\nThe district control room operates 24x7 during disaster periods.",
		model.LanguageHindi:   "📞 आपातकालीन संपर्क:\n\n• राष्ट्रीय आपातकाल: 112\n• जिला आपदा नियंत्रण कक्ष: 1077\n• एम्बुलेंस: 108\n• अग्निशमन: 101\n• पुलिस: 100\n\nआपदा अवधि में जिला नियंत्रण कक्ष 24x7 कार्यरत रहता है।",
		model.LanguageNepali:  "📞 आपतकालीन सम्पर्क:\n\n• राष्ट्रिय आपतकाल: 112\n• जिल्ला विपद् नियन्त्रण कक्ष: 1077\n• एम्बुलेन्स: 108\n• दमकल: 101\n• प्रहरी: 100\n\nविपद्को समयमा जिल्ला नियन्त्रण कक्ष 24x7 सञ्चालनमा रहन्छ।",
	},
	replyNothingToCancel: {
		model.LanguageEnglish: "There is nothing to cancel right now. Type 'apply' to start a new application or 'help' to see what I can do.",
		model.LanguageHindi:   "अभी रद्द करने के लिए कुछ नहीं है। नया आवेदन शुरू करने के लिए 'apply' या सहायता के लिए 'help' लिखें।",
		model.LanguageNepali:  "अहिले रद्द गर्न केही छैन। नयाँ आवेदन सुरु गर्न 'apply' वा सहायताको लागि 'help' लेख्नुहोस्।",
	},
	replyUnclassified: {
		model.LanguageEnglish: "Sorry, I did not understand that. You can:\n• Type 'apply' for an ex-gratia application\n• Type 'status' to check an application\n• Type 'help' to see everything I can do",
		model.LanguageHindi:   "क्षमा करें, मैं समझ नहीं पाया। आप:\n• Ex-Gratia आवेदन के लिए 'apply' लिखें\n• आवेदन की स्थिति के लिए 'status' लिखें\n• सभी विकल्पों के लिए 'help' लिखें",
		model.LanguageNepali:  "माफ गर्नुहोस्, मैले बुझिनँ। तपाईं:\n• Ex-Gratia आवेदनको लागि 'apply' लेख्नुहोस्\n• आवेदनको स्थितिको लागि 'status' लेख्नुहोस्\n• सबै विकल्पको लागि 'help' लेख्नुहोस्",
	},
	replyUnexpectedLocation: {
		model.LanguageEnglish: "Thanks, but I was not expecting a location right now. Type 'apply' to start an application.",
		model.LanguageHindi:   "धन्यवाद, लेकिन अभी मुझे स्थान की आवश्यकता नहीं थी। आवेदन शुरू करने के लिए 'apply' लिखें।",
		model.LanguageNepali:  "धन्यवाद, तर अहिले मलाई स्थान चाहिएको थिएन। आवेदन सुरु गर्न 'apply' लेख्नुहोस्।",
	},
	replyCorrupted: {
		model.LanguageEnglish: "Sorry, something went wrong with your session and it has been reset. Your previous answers were discarded - please type 'apply' to start again.",
		model.LanguageHindi:   "क्षमा करें, आपके सत्र में कुछ गड़बड़ हुई और इसे रीसेट कर दिया गया है। कृपया 'apply' लिखकर फिर से शुरू करें।",
		model.LanguageNepali:  "माफ गर्नुहोस्, तपाईंको सत्रमा समस्या आयो र यसलाई रिसेट गरिएको छ। कृपया 'apply' लेखेर फेरि सुरु गर्नुहोस्।",
	},
}

func replyText(key replyKey, lang model.Language) string {
	texts := fixedReplies[key]
	if t, ok := texts[lang]; ok {
		return t
	}
	return texts[model.LanguageEnglish]
}

// menuButtons is the inline keyboard under the welcome and help replies.
// Callback data carries the intent tag, which classify resolves directly.
func menuButtons(lang model.Language) [][]model.Button {
	labels := map[model.Language][]string{
		model.LanguageEnglish: {"📝 Apply for Relief", "📊 Check Status", "📋 Relief Norms", "📞 Emergency Contacts"},
		model.LanguageHindi:   {"📝 राहत के लिए आवेदन", "📊 स्थिति जांचें", "📋 राहत मानदंड", "📞 आपातकालीन संपर्क"},
		model.LanguageNepali:  {"📝 राहतको लागि आवेदन", "📊 स्थिति जाँच", "📋 राहत मापदण्ड", "📞 आपतकालीन सम्पर्क"},
	}
	l, ok := labels[lang]
	if !ok {
		l = labels[model.LanguageEnglish]
	}
	return [][]model.Button{
		{{Label: l[0], Data: string(intent.IntentApply)}, {Label: l[1], Data: string(intent.IntentStatus)}},
		{{Label: l[2], Data: string(intent.IntentNorms)}, {Label: l[3], Data: string(intent.IntentContacts)}},
	}
}

var statusHeaders = map[model.Language]string{
	model.LanguageEnglish: "📊 Application %s\nStatus: %s",
	model.LanguageHindi:   "📊 आवेदन %s\nस्थिति: %s",
	model.LanguageNepali:  "📊 आवेदन %s\nस्थिति: %s",
}

func renderStatus(lang model.Language, app *status.Application) string {
	header, ok := statusHeaders[lang]
	if !ok {
		header = statusHeaders[model.LanguageEnglish]
	}
	out := fmt.Sprintf(header, app.ReferenceNo, app.Status)
	if app.Remarks != "" {
		out += "\n" + app.Remarks
	}
	if app.UpdatedAt != "" {
		out += "\n" + app.UpdatedAt
	}
	return out
}

func renderStatusNotFound(lang model.Language, ref string) string {
	switch lang {
	case model.LanguageHindi:
		return fmt.Sprintf("आवेदन %s नहीं मिला। कृपया ID जांचकर फिर से प्रयास करें।", ref)
	case model.LanguageNepali:
		return fmt.Sprintf("आवेदन %s फेला परेन। कृपया ID जाँचेर फेरि प्रयास गर्नुहोस्।", ref)
	default:
		return fmt.Sprintf("Application %s was not found. Please check the ID and try again.", ref)
	}
}

func renderStatusUnavailable(lang model.Language) string {
	switch lang {
	case model.LanguageHindi:
		return "स्थिति सेवा अभी उपलब्ध नहीं है। कृपया कुछ देर बाद प्रयास करें।"
	case model.LanguageNepali:
		return "स्थिति सेवा अहिले उपलब्ध छैन। कृपया केही समयपछि प्रयास गर्नुहोस्।"
	default:
		return "The status service is not available right now. Please try again later."
	}
}
