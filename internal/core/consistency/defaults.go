package consistency

// DefaultLexicon returns the built-in Spanish vocabulary. Canonical forms
// are masculine singular except facial-hair descriptors, which agree with
// "barba" and stay feminine.
func DefaultLexicon() *Lexicon {
	l := &Lexicon{
		Lemmas: map[string]string{
			// Colors, plural and gender reduction.
			"azules": "azul", "verdes": "verde", "marrones": "marrón",
			"grises": "gris", "negros": "negro", "negra": "negro", "negras": "negro",
			"blancos": "blanco", "blanca": "blanco", "blancas": "blanco",
			"rubios": "rubio", "rubia": "rubio", "rubias": "rubio",
			"castaños": "castaño", "castaña": "castaño", "castañas": "castaño",
			"dorados": "dorado", "dorada": "dorado",
			"oscuros": "oscuro", "oscura": "oscuro", "oscuras": "oscuro",
			"claros": "claro", "clara": "claro", "claras": "claro",
			"rojos": "rojo", "roja": "rojo", "rojas": "rojo",
			"canosos": "canoso", "canosas": "canosa",
			"plateados": "plateado", "plateada": "plateado",

			// Build and height.
			"alta": "alto", "altos": "alto", "altas": "alto",
			"baja": "bajo", "bajos": "bajo", "bajas": "bajo",
			"delgada": "delgado", "delgados": "delgado", "delgadas": "delgado",
			"gorda": "gordo", "gordos": "gordo", "gordas": "gordo",
			"flaca": "flaco", "flacos": "flaco",
			"fuertes": "fuerte", "débiles": "débil",
			"esbelta": "esbelto", "robusta": "robusto",
			"corpulenta": "corpulento", "musculosa": "musculoso",
			"fornida": "fornido", "menuda": "menudo", "pequeña": "pequeño",
			"gruesa": "grueso", "gruesos": "grueso", "gruesas": "grueso",
			"fina": "fino", "finos": "fino", "finas": "fino",

			// Hair type.
			"lisos": "liso", "lisa": "liso", "lisas": "liso",
			"rizados": "rizado", "rizada": "rizado", "rizadas": "rizado",
			"ondulados": "ondulado", "ondulada": "ondulado",
			"lacios": "lacio", "lacia": "lacio",
			"cortos": "corto", "corta": "corto", "cortas": "corto",
			"largos": "largo", "largas": "largo",

			// Personality.
			"alegres": "alegre", "tímida": "tímido", "tímidos": "tímido",
			"valientes": "valiente", "cobardes": "cobarde",
			"seria": "serio", "serios": "serio",
			"tranquila": "tranquilo", "nerviosa": "nervioso",
			"generosa": "generoso", "tacaña": "tacaño",
			"amables": "amable", "cruel": "cruel", "crueles": "cruel",

			// Distinctive features (descriptors agree with their noun).
			"aguileñas": "aguileña", "chatas": "chata",
			"respingonas": "respingona",
			"profundos": "profundo", "profundas": "profunda",
			"pobladas": "poblada", "espesas": "espesa",
		},

		Synonyms: map[string]map[string][]string{
			"colors": {
				"azul":    {"celeste", "añil", "zafiro", "turquesa"},
				"verde":   {"esmeralda", "oliva", "jade"},
				"marrón":  {"castaño", "café", "avellana", "pardo", "chocolate"},
				"castaño": {"marrón", "café", "avellana"},
				"gris":    {"plateado", "ceniza", "plomizo"},
				"rubio":   {"dorado", "pajizo", "trigueño"},
				"rojo":    {"pelirrojo", "cobrizo", "bermejo"},
				"blanco":  {"cano", "canoso", "nevado", "níveo"},
				"negro":   {"azabache"},
				"miel":    {"ámbar", "dorado"},
			},
			"build": {
				"delgado": {"flaco", "esbelto", "enjuto", "fino", "escuálido"},
				"fuerte":  {"musculoso", "fornido", "robusto", "corpulento"},
				"gordo":   {"obeso", "grueso", "rechoncho", "orondo"},
				"alto":    {"espigado"},
				"bajo":    {"pequeño", "menudo", "chaparro"},
			},
			"personality": {
				"alegre":    {"jovial", "risueño", "animado", "contento"},
				"tímido":    {"introvertido", "retraído", "reservado", "vergonzoso"},
				"valiente":  {"audaz", "intrépido", "osado", "temerario"},
				"amable":    {"cordial", "afable", "gentil", "atento"},
				"serio":     {"formal", "grave", "adusto"},
				"tranquilo": {"sereno", "calmado", "sosegado", "apacible"},
			},
			"hair_type": {
				"liso":   {"lacio"},
				"rizado": {"crespo", "ensortijado"},
			},
			"facial_hair": {
				"espesa": {"poblada", "tupida", "densa", "frondosa"},
				"rala":   {"escasa", "despoblada"},
				"canosa": {"blanca", "entrecana", "gris"},
				"larga":  {"crecida"},
				"corta":  {"recortada"},
			},
		},

		Antonyms: map[string]map[string][]string{
			"colors": {
				"negro":  {"blanco", "rubio", "cano", "canoso", "claro"},
				"blanco": {"negro", "azabache", "oscuro"},
				"rubio":  {"negro", "moreno", "azabache"},
				"claro":  {"oscuro"},
				"oscuro": {"claro", "rubio"},
				"azul":   {"marrón", "negro", "verde", "castaño"},
				"verde":  {"marrón", "azul", "negro", "castaño"},
				"marrón": {"azul", "verde", "gris"},
			},
			"build": {
				"delgado": {"gordo", "obeso", "corpulento", "robusto", "grueso", "rechoncho"},
				"gordo":   {"delgado", "flaco", "esbelto", "enjuto", "escuálido"},
				"alto":    {"bajo", "pequeño", "menudo", "chaparro"},
				"bajo":    {"alto", "espigado"},
				"fuerte":  {"débil", "enclenque", "endeble"},
				"débil":   {"fuerte", "musculoso", "fornido", "robusto"},
			},
			"personality": {
				"alegre":    {"triste", "melancólico", "taciturno", "sombrío"},
				"tímido":    {"extrovertido", "atrevido", "desenvuelto"},
				"valiente":  {"cobarde", "miedoso", "temeroso", "pusilánime"},
				"amable":    {"grosero", "hosco", "antipático", "cruel"},
				"tranquilo": {"nervioso", "inquieto", "agitado", "irascible"},
				"generoso":  {"tacaño", "avaro", "mezquino"},
				"serio":     {"bromista", "juguetón"},
			},
			"hair_type": {
				"liso":   {"rizado", "ondulado", "crespo", "ensortijado"},
				"rizado": {"liso", "lacio"},
				"corto":  {"largo"},
				"largo":  {"corto", "rapado"},
			},
			"location": {
				"dentro": {"fuera"},
				"norte":  {"sur"},
				"este":   {"oeste"},
				"cerca":  {"lejos"},
			},
			"facial_hair": {
				"espesa":  {"rala", "escasa", "despoblada"},
				"rala":    {"espesa", "poblada", "tupida", "densa"},
				"larga":   {"corta", "recortada", "rapada"},
				"corta":   {"larga", "crecida"},
				"cuidada": {"descuidada", "desaliñada"},
			},
		},

		Regions: map[string][]string{
			"nose":     {"nariz"},
			"mouth":    {"labio", "labios", "boca"},
			"eyes":     {"ojo", "ojos", "ojera", "ojeras"},
			"brow":     {"ceja", "cejas", "frente", "entrecejo"},
			"cheek":    {"mejilla", "mejillas", "pómulo", "pómulos"},
			"chin":     {"mentón", "barbilla", "mandíbula"},
			"ears":     {"oreja", "orejas"},
			"neck":     {"cuello", "garganta"},
			"hands":    {"mano", "manos", "dedo", "dedos"},
			"arms":     {"brazo", "brazos", "muñeca"},
			"legs":     {"pierna", "piernas", "rodilla"},
			"back":     {"espalda", "hombro", "hombros"},
			"torso":    {"pecho", "torso", "vientre"},
			"scar":     {"cicatriz", "cicatrices"},
			"tattoo":   {"tatuaje", "tatuajes"},
			"mole":     {"lunar", "lunares", "peca", "pecas"},
			"teeth":    {"diente", "dientes", "colmillo"},
			"forehead": {"sien", "sienes"},
		},

		FacialHairDimensions: map[string][]string{
			"density": {"espesa", "poblada", "tupida", "densa", "frondosa", "rala", "escasa", "despoblada"},
			"color":   {"canosa", "blanca", "gris", "entrecana", "negra", "oscura", "castaña", "rubia", "pelirroja", "cobriza"},
			"length":  {"larga", "corta", "crecida", "recortada", "rapada", "incipiente"},
			"style":   {"cuidada", "descuidada", "desaliñada", "arreglada", "perfilada", "puntiaguda"},
		},

		AgeRanges: map[string][]int{
			"bebé":        {0, 2},
			"niño":        {0, 12},
			"niña":        {0, 12},
			"chico":       {10, 19},
			"chica":       {10, 19},
			"adolescente": {13, 19},
			"joven":       {15, 29},
			"veinteañero": {20, 29},
			"treintañero": {30, 39},
			"adulto":      {25, 60},
			"adulta":      {25, 60},
			"mediana edad": {40, 60},
			"maduro":      {40, 65},
			"madura":      {40, 65},
			"mayor":       {60, 99},
			"viejo":       {60, 99},
			"vieja":       {60, 99},
			"anciano":     {65, 99},
			"anciana":     {65, 99},
		},

		TemporalKeys: []string{"hair_modification"},
		TemporalMarkers: []string{
			"teñido", "teñida", "tinte", "se tiñó",
			"recogido", "recogida", "trenza", "coleta", "moño", "suelto",
			"se cortó", "se rapó", "se afeitó", "se dejó crecer",
		},
	}
	l.index()
	return l
}
