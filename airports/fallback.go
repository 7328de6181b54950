package airports

// fallbackCoords patches coordinate coverage for US airports that the
// primary dataset routinely misses. Entries are IATA code to lat/lon in
// decimal degrees. The external coordinates table, when present, always
// wins over this map.
var fallbackCoords = map[string]Coordinates{
	"ABE": {Lat: 40.6521, Lon: -75.4408},
	"ABI": {Lat: 32.4113, Lon: -99.6819},
	"ABQ": {Lat: 35.0402, Lon: -106.6091},
	"ABR": {Lat: 45.4491, Lon: -98.4218},
	"ABY": {Lat: 31.5355, Lon: -84.1947},
	"ACK": {Lat: 41.2530, Lon: -70.0602},
	"ACT": {Lat: 31.6113, Lon: -97.2305},
	"ACV": {Lat: 40.9781, Lon: -124.1086},
	"ACY": {Lat: 39.4576, Lon: -74.5772},
	"AEX": {Lat: 31.3274, Lon: -92.5486},
	"AGS": {Lat: 33.3699, Lon: -81.9645},
	"ALB": {Lat: 42.7483, Lon: -73.8017},
	"ALO": {Lat: 42.5571, Lon: -92.4003},
	"ALW": {Lat: 46.1768, Lon: -118.2887},
	"AMA": {Lat: 35.2194, Lon: -101.7059},
	"ANC": {Lat: 61.1743, Lon: -149.9962},
	"APN": {Lat: 45.0781, Lon: -83.5603},
	"ASE": {Lat: 39.2232, Lon: -106.8687},
	"ATL": {Lat: 33.6407, Lon: -84.4277},
	"ATW": {Lat: 44.2581, Lon: -88.5191},
	"AUS": {Lat: 30.1945, Lon: -97.6699},
	"AVL": {Lat: 35.4362, Lon: -82.5418},
	"AVP": {Lat: 41.3375, Lon: -75.7242},
	"AZA": {Lat: 33.3078, Lon: -111.6553},
	"AZO": {Lat: 42.2349, Lon: -85.5521},
	"BDL": {Lat: 41.9389, Lon: -72.6832},
	"BFF": {Lat: 41.8740, Lon: -103.5966},
	"BFL": {Lat: 35.4336, Lon: -119.0568},
	"BGM": {Lat: 42.2084, Lon: -75.9798},
	"BGR": {Lat: 44.8074, Lon: -68.8281},
	"BHM": {Lat: 33.5629, Lon: -86.7535},
	"BIH": {Lat: 37.9308, Lon: -91.7656},
	"BIL": {Lat: 45.8077, Lon: -108.5430},
	"BIS": {Lat: 46.7727, Lon: -100.7462},
	"BJI": {Lat: 64.8436, Lon: -147.6136},
	"BLI": {Lat: 48.7947, Lon: -122.5375},
	"BLV": {Lat: 38.5452, Lon: -89.8352},
	"BMI": {Lat: 40.4771, Lon: -88.9159},
	"BNA": {Lat: 36.1245, Lon: -86.6782},
	"BOI": {Lat: 43.5644, Lon: -116.2228},
	"BOS": {Lat: 42.3656, Lon: -71.0096},
	"BPT": {Lat: 29.9508, Lon: -94.0205},
	"BQK": {Lat: 25.2528, Lon: -80.1067},
	"BQN": {Lat: 18.4948, Lon: -67.1294},
	"BRD": {Lat: 45.2078, Lon: -69.7842},
	"BRO": {Lat: 25.9068, Lon: -97.4259},
	"BTM": {Lat: 45.9548, Lon: -112.4970},
	"BTR": {Lat: 30.5332, Lon: -91.1496},
	"BTV": {Lat: 44.4719, Lon: -73.1533},
	"BUF": {Lat: 42.9405, Lon: -78.7322},
	"BUR": {Lat: 34.2007, Lon: -118.3585},
	"BWI": {Lat: 39.1754, Lon: -76.6684},
	"BZN": {Lat: 45.7769, Lon: -111.1530},
	"CAE": {Lat: 33.9388, Lon: -81.1195},
	"CAK": {Lat: 40.9161, Lon: -81.4422},
	"CDC": {Lat: 37.7005, Lon: -113.0984},
	"CHA": {Lat: 35.0353, Lon: -85.2034},
	"CHO": {Lat: 38.1386, Lon: -78.4529},
	"CHS": {Lat: 32.8986, Lon: -80.0405},
	"CID": {Lat: 41.8847, Lon: -91.7108},
	"CIU": {Lat: 46.9108, Lon: -68.0178},
	"CLD": {Lat: 32.9005, Lon: -117.2800},
	"CLE": {Lat: 41.4117, Lon: -81.8498},
	"CLL": {Lat: 30.5886, Lon: -96.3631},
	"CLT": {Lat: 35.2144, Lon: -80.9473},
	"CMH": {Lat: 39.9980, Lon: -82.8919},
	"CMI": {Lat: 40.0392, Lon: -88.2781},
	"CMX": {Lat: 47.1684, Lon: -88.4891},
	"COD": {Lat: 44.5202, Lon: -109.0238},
	"COS": {Lat: 38.8058, Lon: -104.7006},
	"COU": {Lat: 38.8181, Lon: -92.2196},
	"CPR": {Lat: 42.9080, Lon: -106.4644},
	"CRP": {Lat: 27.7704, Lon: -97.5012},
	"CRW": {Lat: 38.3731, Lon: -81.5932},
	"CSG": {Lat: 32.5163, Lon: -84.9389},
	"CVG": {Lat: 39.0488, Lon: -84.6678},
	"CWA": {Lat: 44.7776, Lon: -89.6674},
	"CYS": {Lat: 41.1557, Lon: -104.8119},
	"DAB": {Lat: 29.1799, Lon: -81.0581},
	"DAL": {Lat: 32.8471, Lon: -96.8518},
	"DAY": {Lat: 39.9024, Lon: -84.2194},
	"DCA": {Lat: 38.8512, Lon: -77.0402},
	"DDC": {Lat: 37.7634, Lon: -99.9656},
	"DEC": {Lat: 39.8346, Lon: -88.8657},
	"DEN": {Lat: 39.8561, Lon: -104.6737},
	"DFW": {Lat: 32.8998, Lon: -97.0403},
	"DHN": {Lat: 31.3213, Lon: -85.4496},
	"DIK": {Lat: 46.7979, Lon: -102.8019},
	"DLH": {Lat: 46.8421, Lon: -92.1936},
	"DRO": {Lat: 37.1515, Lon: -107.7538},
	"DSM": {Lat: 41.5340, Lon: -93.6631},
	"DTW": {Lat: 42.2162, Lon: -83.3554},
	"DVL": {Lat: 46.8427, Lon: -96.8156},
	"EAR": {Lat: 40.7273, Lon: -99.0068},
	"EAU": {Lat: 44.8658, Lon: -91.4843},
	"ECP": {Lat: 30.3581, Lon: -85.7948},
	"EGE": {Lat: 39.6426, Lon: -106.9177},
	"EKO": {Lat: 38.8042, Lon: -79.8573},
	"ELM": {Lat: 42.1599, Lon: -76.8916},
	"ELP": {Lat: 31.8072, Lon: -106.3781},
	"ESC": {Lat: 45.7227, Lon: -87.0937},
	"EUG": {Lat: 44.1246, Lon: -123.2114},
	"EVV": {Lat: 38.0370, Lon: -87.5324},
	"EWN": {Lat: 35.0730, Lon: -77.0429},
	"EWR": {Lat: 40.6895, Lon: -74.1745},
	"EYW": {Lat: 24.5561, Lon: -81.7596},
	"FAI": {Lat: 64.8151, Lon: -147.8560},
	"FAR": {Lat: 46.9207, Lon: -96.8158},
	"FAT": {Lat: 36.7762, Lon: -119.7181},
	"FAY": {Lat: 34.9912, Lon: -78.8803},
	"FCA": {Lat: 48.3105, Lon: -114.2551},
	"FLG": {Lat: 35.1345, Lon: -111.6703},
	"FLL": {Lat: 26.0742, Lon: -80.1506},
	"FMN": {Lat: 36.7412, Lon: -108.2298},
	"FNT": {Lat: 42.9655, Lon: -83.7436},
	"FOD": {Lat: 42.5511, Lon: -94.1925},
	"FSD": {Lat: 43.5820, Lon: -96.7419},
	"FSM": {Lat: 35.3362, Lon: -94.3675},
	"FWA": {Lat: 40.9785, Lon: -85.1951},
	"GCC": {Lat: 43.8742, Lon: -103.0574},
	"GCK": {Lat: 37.9276, Lon: -100.7244},
	"GEG": {Lat: 47.6198, Lon: -117.5336},
	"GFK": {Lat: 47.9493, Lon: -97.1761},
	"GGG": {Lat: 32.3840, Lon: -94.7116},
	"GJT": {Lat: 39.1224, Lon: -108.5267},
	"GNV": {Lat: 29.6900, Lon: -82.2718},
	"GPT": {Lat: 30.4073, Lon: -89.0701},
	"GRB": {Lat: 44.4851, Lon: -88.1296},
	"GRI": {Lat: 40.9675, Lon: -98.3096},
	"GRK": {Lat: 31.0672, Lon: -97.8289},
	"GRR": {Lat: 42.8808, Lon: -85.5228},
	"GSO": {Lat: 36.0978, Lon: -79.9373},
	"GSP": {Lat: 34.8957, Lon: -82.2189},
	"GTF": {Lat: 47.4820, Lon: -111.3705},
	"GTR": {Lat: 33.4503, Lon: -88.5914},
	"GUC": {Lat: 38.5339, Lon: -106.9331},
	"GUF": {Lat: 39.3704, Lon: -81.4395},
	"GUM": {Lat: 13.4834, Lon: 144.7960},
	"HDN": {Lat: 40.4811, Lon: -107.2176},
	"HHH": {Lat: 35.2584, Lon: -80.9536},
	"HIB": {Lat: 47.3866, Lon: -92.8389},
	"HLN": {Lat: 46.6068, Lon: -111.9825},
	"HNL": {Lat: 21.3099, Lon: -157.8581},
	"HOB": {Lat: 32.6875, Lon: -103.2173},
	"HOU": {Lat: 29.6454, Lon: -95.2789},
	"HPN": {Lat: 41.0670, Lon: -73.7076},
	"HRL": {Lat: 26.2285, Lon: -97.6544},
	"HSV": {Lat: 34.6371, Lon: -86.7750},
	"HTS": {Lat: 38.3667, Lon: -82.5581},
	"HYA": {Lat: 41.6693, Lon: -70.2803},
	"HYS": {Lat: 38.8422, Lon: -99.2732},
	"IAD": {Lat: 38.9531, Lon: -77.4565},
	"IAH": {Lat: 29.9902, Lon: -95.3368},
	"ICT": {Lat: 37.6499, Lon: -97.4331},
	"IDA": {Lat: 43.5146, Lon: -112.0707},
	"ILM": {Lat: 34.2706, Lon: -77.9026},
	"IMT": {Lat: 45.8181, Lon: -88.1145},
	"IND": {Lat: 39.7173, Lon: -86.2944},
	"INL": {Lat: 48.5664, Lon: -93.4031},
	"ISP": {Lat: 40.7952, Lon: -73.1002},
	"ITH": {Lat: 42.4831, Lon: -76.4584},
	"ITO": {Lat: 19.7188, Lon: -155.0478},
	"JAC": {Lat: 43.6073, Lon: -110.7377},
	"JAN": {Lat: 32.3112, Lon: -90.0759},
	"JAX": {Lat: 30.4941, Lon: -81.6878},
	"JFK": {Lat: 40.6413, Lon: -73.7781},
	"JLN": {Lat: 38.7424, Lon: -94.8907},
	"JMS": {Lat: 46.9297, Lon: -98.6782},
	"JNU": {Lat: 58.3548, Lon: -134.5763},
	"JST": {Lat: 40.3161, Lon: -78.8339},
	"KOA": {Lat: 19.7388, Lon: -156.0456},
	"KTN": {Lat: 55.3556, Lon: -131.7136},
	"LAN": {Lat: 42.7787, Lon: -84.5874},
	"LAR": {Lat: 41.3121, Lon: -105.6750},
	"LAS": {Lat: 36.0840, Lon: -115.1537},
	"LAW": {Lat: 34.5677, Lon: -98.4166},
	"LAX": {Lat: 33.9416, Lon: -118.4085},
	"LBB": {Lat: 33.6636, Lon: -101.8228},
	"LBE": {Lat: 40.2759, Lon: -79.4048},
	"LBF": {Lat: 41.1313, Lon: -100.6846},
	"LBL": {Lat: 37.0441, Lon: -89.8786},
	"LCH": {Lat: 30.1261, Lon: -93.2234},
	"LCK": {Lat: 39.8138, Lon: -82.9278},
	"LEX": {Lat: 38.0365, Lon: -84.6059},
	"LFT": {Lat: 30.2053, Lon: -91.9876},
	"LGA": {Lat: 40.7769, Lon: -73.8740},
	"LGB": {Lat: 33.8177, Lon: -118.1516},
	"LIH": {Lat: 21.9760, Lon: -159.3390},
	"LIT": {Lat: 34.7294, Lon: -92.2243},
	"LNK": {Lat: 40.8510, Lon: -96.7581},
	"LRD": {Lat: 27.5438, Lon: -99.4616},
	"LSE": {Lat: 43.8759, Lon: -91.2563},
	"LWS": {Lat: 46.3745, Lon: -117.0154},
	"MAF": {Lat: 31.9425, Lon: -102.2019},
	"MBS": {Lat: 43.5329, Lon: -84.0796},
	"MCI": {Lat: 39.2976, Lon: -94.7139},
	"MCO": {Lat: 28.4312, Lon: -81.3081},
	"MCW": {Lat: 41.4307, Lon: -100.5917},
	"MDT": {Lat: 40.1935, Lon: -76.7634},
	"MDW": {Lat: 41.7868, Lon: -87.7522},
	"MEI": {Lat: 32.3326, Lon: -88.7519},
	"MEM": {Lat: 35.0424, Lon: -89.9767},
	"MFE": {Lat: 26.1758, Lon: -98.2386},
	"MFR": {Lat: 42.3742, Lon: -122.8738},
	"MGM": {Lat: 32.3006, Lon: -86.3940},
	"MGW": {Lat: 39.6429, Lon: -79.9163},
	"MHK": {Lat: 39.1409, Lon: -96.6708},
	"MHT": {Lat: 42.9326, Lon: -71.4357},
	"MIA": {Lat: 25.7959, Lon: -80.2870},
	"MKE": {Lat: 42.9472, Lon: -87.8966},
	"MLB": {Lat: 28.1028, Lon: -80.6453},
	"MLI": {Lat: 41.4486, Lon: -90.5075},
	"MLU": {Lat: 32.5109, Lon: -92.0377},
	"MOB": {Lat: 30.6912, Lon: -88.2431},
	"MOT": {Lat: 48.2593, Lon: -101.2803},
	"MQT": {Lat: 46.3536, Lon: -87.3951},
	"MRY": {Lat: 36.5870, Lon: -121.8429},
	"MSN": {Lat: 43.1399, Lon: -89.3375},
	"MSO": {Lat: 46.9163, Lon: -114.0909},
	"MSP": {Lat: 44.8848, Lon: -93.2223},
	"MSY": {Lat: 29.9934, Lon: -90.2581},
	"MTJ": {Lat: 37.2276, Lon: -108.5259},
	"MVY": {Lat: 41.3931, Lon: -70.6143},
	"MYR": {Lat: 33.6797, Lon: -78.9283},
	"OAJ": {Lat: 36.9681, Lon: -76.2012},
	"OAK": {Lat: 37.7214, Lon: -122.2208},
	"OGG": {Lat: 20.8986, Lon: -156.4307},
	"OKC": {Lat: 35.3931, Lon: -97.6007},
	"OMA": {Lat: 41.3032, Lon: -95.8941},
	"ONT": {Lat: 34.0560, Lon: -117.6012},
	"ORD": {Lat: 41.9742, Lon: -87.9073},
	"ORF": {Lat: 36.8946, Lon: -76.2012},
	"ORH": {Lat: 42.2673, Lon: -71.8757},
	"OTH": {Lat: 43.4172, Lon: -124.2461},
	"PAE": {Lat: 47.9063, Lon: -122.2815},
	"PBG": {Lat: 44.6510, Lon: -73.4681},
	"PBI": {Lat: 26.6832, Lon: -80.0956},
	"PDX": {Lat: 45.5898, Lon: -122.5951},
	"PGD": {Lat: 26.9202, Lon: -81.9905},
	"PHL": {Lat: 39.8744, Lon: -75.2424},
	"PHX": {Lat: 33.4342, Lon: -112.0116},
	"PIA": {Lat: 40.6642, Lon: -89.6933},
	"PIB": {Lat: 39.2681, Lon: -79.9331},
	"PIE": {Lat: 27.9103, Lon: -82.6874},
	"PIH": {Lat: 42.9098, Lon: -112.5958},
	"PIT": {Lat: 40.4915, Lon: -80.2329},
	"PLN": {Lat: 44.6850, Lon: -85.5783},
	"PNS": {Lat: 30.4734, Lon: -87.1866},
	"PPG": {Lat: -14.3310, Lon: -170.7105},
	"PQI": {Lat: 46.6890, Lon: -68.0448},
	"PRC": {Lat: 34.6544, Lon: -112.4196},
	"PSC": {Lat: 46.2647, Lon: -119.1191},
	"PSE": {Lat: 18.0083, Lon: -66.5635},
	"PSP": {Lat: 33.8297, Lon: -116.5066},
	"PVD": {Lat: 41.7240, Lon: -71.4281},
	"PVU": {Lat: 40.2192, Lon: -111.7235},
	"PWM": {Lat: 43.6462, Lon: -70.3093},
	"RAP": {Lat: 44.0453, Lon: -103.0574},
	"RDD": {Lat: 40.5089, Lon: -122.2934},
	"RDM": {Lat: 44.2541, Lon: -121.1500},
	"RDU": {Lat: 35.8776, Lon: -78.7875},
	"RFD": {Lat: 42.1954, Lon: -89.0972},
	"RHI": {Lat: 45.6312, Lon: -89.4675},
	"RIC": {Lat: 37.5052, Lon: -77.3197},
	"RIW": {Lat: 43.0642, Lon: -108.4597},
	"RKS": {Lat: 41.5942, Lon: -109.0651},
	"RNO": {Lat: 39.4991, Lon: -119.7681},
	"ROA": {Lat: 37.3255, Lon: -79.9754},
	"ROC": {Lat: 43.1189, Lon: -77.6724},
	"ROW": {Lat: 33.3017, Lon: -104.5307},
	"RST": {Lat: 43.9083, Lon: -92.4902},
	"RSW": {Lat: 26.5362, Lon: -81.7552},
	"SAF": {Lat: 35.6178, Lon: -106.0887},
	"SAN": {Lat: 32.7338, Lon: -117.1933},
	"SAT": {Lat: 29.5337, Lon: -98.4698},
	"SAV": {Lat: 32.1276, Lon: -81.2021},
	"SBA": {Lat: 34.4259, Lon: -119.8403},
	"SBN": {Lat: 41.7093, Lon: -86.3186},
	"SBP": {Lat: 35.2368, Lon: -120.6424},
	"SCE": {Lat: 40.8496, Lon: -78.2897},
	"SCK": {Lat: 37.8942, Lon: -121.2381},
	"SDF": {Lat: 38.1740, Lon: -85.7364},
	"SEA": {Lat: 47.4502, Lon: -122.3088},
	"SFB": {Lat: 28.7776, Lon: -81.2375},
	"SFO": {Lat: 37.6213, Lon: -122.3790},
	"SGF": {Lat: 37.2457, Lon: -93.3886},
	"SGU": {Lat: 37.0361, Lon: -113.5103},
	"SHR": {Lat: 44.7692, Lon: -106.9803},
	"SHV": {Lat: 32.4466, Lon: -93.8256},
	"SIT": {Lat: 57.0471, Lon: -135.3616},
	"SJC": {Lat: 37.3639, Lon: -121.9289},
	"SJT": {Lat: 31.3577, Lon: -100.4963},
	"SJU": {Lat: 18.4394, Lon: -66.0018},
	"SLC": {Lat: 40.7884, Lon: -111.9778},
	"SLN": {Lat: 38.8403, Lon: -97.6519},
	"SMF": {Lat: 38.6954, Lon: -121.5908},
	"SMX": {Lat: 34.8989, Lon: -120.4576},
	"SNA": {Lat: 33.6757, Lon: -117.8681},
	"SPI": {Lat: 39.8441, Lon: -89.6779},
	"SPS": {Lat: 33.9888, Lon: -98.4919},
	"SRQ": {Lat: 27.3954, Lon: -82.5544},
	"STL": {Lat: 38.7487, Lon: -90.3700},
	"STS": {Lat: 38.5089, Lon: -122.8131},
	"STT": {Lat: 18.3373, Lon: -64.9733},
	"STX": {Lat: 17.7019, Lon: -64.7986},
	"SUN": {Lat: 43.5041, Lon: -114.2958},
	"SUX": {Lat: 42.4026, Lon: -96.3844},
	"SWF": {Lat: 41.5041, Lon: -74.1048},
	"SWO": {Lat: 37.3684, Lon: -92.2226},
	"SYR": {Lat: 43.1112, Lon: -76.1063},
	"TLH": {Lat: 30.3965, Lon: -84.3503},
	"TPA": {Lat: 27.9755, Lon: -82.5332},
	"TRI": {Lat: 36.4752, Lon: -82.4074},
	"TTN": {Lat: 40.2766, Lon: -74.8148},
	"TUL": {Lat: 36.1984, Lon: -95.8881},
	"TUS": {Lat: 32.1161, Lon: -110.9410},
	"TVC": {Lat: 44.7414, Lon: -85.5822},
	"TWF": {Lat: 42.4818, Lon: -114.4877},
	"TXK": {Lat: 33.4537, Lon: -93.9910},
	"TYR": {Lat: 32.3540, Lon: -95.4024},
	"TYS": {Lat: 35.8111, Lon: -83.9937},
	"USA": {Lat: 31.1447, Lon: -87.4214},
	"VCT": {Lat: 28.8526, Lon: -96.9185},
	"VLD": {Lat: 30.7825, Lon: -83.2767},
	"VPS": {Lat: 30.4832, Lon: -86.5254},
	"WYS": {Lat: 37.2018, Lon: -109.7549},
	"XNA": {Lat: 36.2819, Lon: -94.3069},
	"XWA": {Lat: 47.2304, Lon: -120.2067},
	"YUM": {Lat: 32.6566, Lon: -114.6060},
}
