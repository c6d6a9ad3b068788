package character

// StatKey names one of the six attributes
type StatKey string

const (
	STR  StatKey = "STR"
	DEX  StatKey = "DEX"
	CON  StatKey = "CON"
	INT  StatKey = "INT"
	CHA  StatKey = "CHA"
	FATE StatKey = "FATE"
)

// StatKeys lists every attribute in sheet order
var StatKeys = []StatKey{STR, DEX, CON, INT, CHA, FATE}

// Stats is a fixed-shape attribute record. A zero field contributes nothing
// when used as a modifier.
type Stats struct {
	STR  int `json:"STR"`
	DEX  int `json:"DEX"`
	CON  int `json:"CON"`
	INT  int `json:"INT"`
	CHA  int `json:"CHA"`
	FATE int `json:"FATE"`
}

// Add returns the field-wise sum
func (s Stats) Add(o Stats) Stats {
	return Stats{
		STR:  s.STR + o.STR,
		DEX:  s.DEX + o.DEX,
		CON:  s.CON + o.CON,
		INT:  s.INT + o.INT,
		CHA:  s.CHA + o.CHA,
		FATE: s.FATE + o.FATE,
	}
}

// Floor raises every field below min to min
func (s Stats) Floor(min int) Stats {
	f := func(v int) int {
		if v < min {
			return min
		}
		return v
	}
	return Stats{
		STR:  f(s.STR),
		DEX:  f(s.DEX),
		CON:  f(s.CON),
		INT:  f(s.INT),
		CHA:  f(s.CHA),
		FATE: f(s.FATE),
	}
}

// Get returns a single attribute; unknown keys read as 0
func (s Stats) Get(k StatKey) int {
	switch k {
	case STR:
		return s.STR
	case DEX:
		return s.DEX
	case CON:
		return s.CON
	case INT:
		return s.INT
	case CHA:
		return s.CHA
	case FATE:
		return s.FATE
	}
	return 0
}

// With returns a copy with one attribute replaced
func (s Stats) With(k StatKey, v int) Stats {
	switch k {
	case STR:
		s.STR = v
	case DEX:
		s.DEX = v
	case CON:
		s.CON = v
	case INT:
		s.INT = v
	case CHA:
		s.CHA = v
	case FATE:
		s.FATE = v
	}
	return s
}

// Sum totals all attributes
func (s Stats) Sum() int {
	return s.STR + s.DEX + s.CON + s.INT + s.CHA + s.FATE
}

// IsStatKey reports whether k names an attribute
func IsStatKey(k string) bool {
	for _, key := range StatKeys {
		if string(key) == k {
			return true
		}
	}
	return false
}
