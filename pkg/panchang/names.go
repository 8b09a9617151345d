package panchang

// Nakshatras are the 27 lunar mansions in order from 0° sidereal.
var Nakshatras = [27]string{
	"ASHWINI", "BHARANI", "KRITTIKA", "ROHINI", "MRIGASHIRA", "ARDRA",
	"PUNARVASU", "PUSHYA", "ASHLESHA", "MAGHA", "PURVA PHALGUNI", "UTTARA PHALGUNI",
	"HASTA", "CHITRA", "SWATI", "VISHAKHA", "ANURADHA", "JYESHTA",
	"MOOLA", "PURVA ASHADA", "UTTARA ASHADA", "SHRAVANA", "DHANISHTA",
	"SHATABISHA", "PURVA BHADRA", "UTTARA BHADRA", "REVATI",
}

// RashiName pairs a zodiac sign with its glyph
type RashiName struct {
	Name   string
	Symbol string
}

// Rashis are the 12 signs in order from 0° sidereal.
var Rashis = [12]RashiName{
	{"MESHA", "♈︎"},
	{"VRISHABHA", "♉︎"},
	{"MITHUNA", "♊︎"},
	{"KATAKA", "♋︎"},
	{"SIMHA", "♌︎"},
	{"KANYA", "♍︎"},
	{"TULA", "♎︎"},
	{"VRISHCHIKA", "♏︎"},
	{"DHANU", "♐︎"},
	{"MAKARA", "♑︎"},
	{"KUMBHA", "♒︎"},
	{"MEENA", "♓︎"},
}

// Months are the solar month names, aligned with Rashis by index.
var Months = [12]string{
	"CHAITRA", "VAISHAKHA", "JYESHTA", "AASHADA",
	"SHRAVANA", "BHADRAPADA", "ASHWAYUJA", "KARTIKA",
	"MARGASHIRA", "PUSHYA", "MAGHA", "PHALGUNA",
}

// Tithis names the tithis of one paksha. The last entry is replaced by
// Purnima or Amavasya depending on the paksha.
var Tithis = [15]string{
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashthi", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dwadashi", "Trayodashi", "Chaturdashi", "Purnima/Amavasya",
}

// Yogas are the 27 yoga names in sector order.
var Yogas = [27]string{
	"Vishkumbha", "Priti", "Ayushman", "Saubhagya", "Sobhana", "Atiganda",
	"Sukarma", "Dhriti", "Shula", "Ganda", "Vriddhi", "Dhruva",
	"Vyaghata", "Harshana", "Vajra", "Siddhi", "Vyatipata", "Variyan",
	"Parigha", "Shiva", "Siddha", "Sadhya", "Shubha", "Shukla",
	"Brahma", "Indra", "Vaidhriti",
}
