package seed

// catalogEntry is one known EV model with its battery capacity in kWh as
// published, kept as a string because the source data includes values like
// "TBA".
type catalogEntry struct {
	Name        string
	CapacityKWh string
}

var catalog = []catalogEntry{
	{"BYD - T3 (Cargo)", "50.3"},
	{"Chery Wanda - 14-Seater Microbus", "53.58"},
	{"Chery Wanda - City Bus EV", "144.97"},
	{"Chery Wanda - EV Coach (9M)", "208.65"},
	{"DFAC (Dongfeng) - EM26 (11-Seater)", "41.86"},
	{"DFAC (Dongfeng) - EM27 (14-Seater)", "53.58"},
	{"DFAC (Dongfeng) - EV32 (14+1 Seater)", "53.58"},
	{"DFSK - Danfe (11-Seater)", "42"},
	{"DFSK - EC35 (Cargo)", "38.6"},
	{"Farizon - SuperVAN (19-Seater)", "82.88"},
	{"Foton - View CS2 (Cargo/Passenger)", "50.23"},
	{"Golden Dragon - Microbus (14-Seater)", "53"},
	{"Golden Dragon - Microbus (16-Seater)", "53"},
	{"Higer - H5C-EV (Standard)", "53.58"},
	{"Higer - H5C-EV (Long Range)", "70.47"},
	{"Higer - H5C-EV (Ultra Long)", "100.96"},
	{"Joylong - E6 (20-Seater)", "80"},
	{"Jubao - Electric Van (11/14 Seater)", "41.86"},
	{"KYC - V5", "41.86"},
	{"KYC - V5D", "41.86"},
	{"Keyton - M80L (14-Seater)", "53.58"},
	{"King Long - King Long EV (14-Seater)", "50.23"},
	{"King Long - King Long EV (16-Seater)", "53.58"},
	{"King Long - King Long EV (19-Seater)", "77.28"},
	{"SRM - X30L EV", "32.14"},
	{"Vanche - 7L-22", "120.27"},
	{"Vanche - 7L-25", "120.27"},
	{"Audi - e-tron 55", "95"},
	{"Audi - Q8 e-tron", "107.8"},
	{"Avatr - Avatr 11", "TBA"},
	{"BAW - Brumby", "17.28"},
	{"BMW - iX1", "66.5"},
	{"BMW - iX2", "66.5"},
	{"BYD - Atto 1 (Long)", "30.08"},
	{"BYD - Atto 1 (Long)", "38.88"},
	{"BYD - Atto 2", "51.13"},
	{"BYD - Atto 3 (Advanced)", "49.92"},
	{"BYD - Atto 3 (Superior)", "60.48"},
	{"BYD - Dolphin", "44.9"},
	{"BYD - M6", "55.4"},
	{"BYD - M6 (MPV)", "71.8"},
	{"BYD - Seal (Dynamic)", "61.44"},
	{"BYD - Seal (Premium)", "82.6"},
	{"BYD - Seal (Performance)", "82.6"},
	{"BYD - Sealion 7", "71.8"},
	{"BYD - Sealion 7 Superior", "91.3"},
	{"BYD - e6", "71.7"},
	{"Citroen - E-C3 Shine", "29.2"},
	{"Deepal - E07", "90"},
	{"Deepal - S05", "56.1"},
	{"Deepal - S07", "66.8"},
	{"Deepal - L09", "79.9"},
	{"Dongfeng - Nammi 01", "42.3"},
	{"Dongfeng - Vigo", "44.94"},
	{"Forthing - Friday", "64.4"},
	{"GWM - ORA 03", "47.88"},
	{"Henrey - Mincar", "16.5"},
	{"Neta - Neta V / V50", "38.54"},
	{"Hyundai - IONIQ 5", "58.9"},
	{"Hyundai - IONIQ 6", "77.4"},
	{"Hyundai - Kona", "39.2"},
	{"Hyundai - Creta EV", "42"},
	{"JMEV - GSE Elight", "49"},
	{"Jaecoo - J5", "58"},
	{"Jaecoo - J6", "65.69"},
	{"Jaguar - I-Pace", "90"},
	{"Jinpeng - Lingbox EC01", "19.2"},
	{"Kia - EV6", "77.4"},
	{"Kia - EV9", "77.4"},
	{"Kia - Niro EV", "64"},
	{"Leapmotor - T03", "37.3"},
	{"Leapmotor - B10", "56"},
	{"Leapmotor - B10 Max", "67"},
	{"Leapmotor - C10", "69.9"},
	{"MG - Comet EV", "17.3"},
	{"MG - Cyberster", "77"},
	{"MG - MG4 Comfort", "51"},
	{"MG - MG4 Luxury", "64"},
	{"MG - ZS EV", "50.3"},
	{"MG - ZS EV (old)", "44.5"},
	{"MG - ZS EV (long range)", "72.6"},
	{"MG - S5 Comfort", "49"},
	{"MG - S5 Deluxe", "62"},
	{"MG - Windsor", "38"},
	{"Mahindra - XUV400", "39.4"},
	{"Mahindra - BE 6", "59"},
	{"Mahindra - Xev 9e", "79"},
	{"Mercedes-Benz - EQA", "70"},
	{"Mercedes-Benz - EQB", "80"},
	{"Mercedes-Benz - EQC", "80"},
	{"Mercedes-Benz - EQS 580", "107.8"},
	{"Nissan - Leaf", "40"},
	{"OMODA - E5", "61"},
	{"Proton - e.Mas 7", "49.52"},
	{"Proton - e.Mas 7 Max", "60.22"},
	{"Seres - E1", "13.8"},
	{"Seres - Seres 3", "52.7"},
	{"Skywell - BE 11", "52"},
	{"Skywell - ET5", "86"},
	{"Smart - #1", "66"},
	{"Tata - Tiago", "24"},
	{"Tata - Tigor", "24"},
	{"Tata - Punch", "35"},
	{"Tata - Nexon", "45"},
	{"Tesla - Model 3", "60"},
	{"Tesla - Model Y", "78"},
	{"Thee Go - E8", "15.2"},
	{"Wuling - Air EV", "17.3"},
	{"Wuling - Binguo", "31.9"},
	{"XPENG - G6", "66"},
	{"Zeekr - X", "66"},
	{"Zeekr - OO1", "100"},
}
