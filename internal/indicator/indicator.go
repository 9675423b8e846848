// Package indicator defines the fixed catalog of maturity indicators.
package indicator

// Key identifies one of the maturity indicators.
type Key string

const (
	KeyLGPD          Key = "lgpd"
	KeyDigitalizacao Key = "digitalizacao"
	KeyArrecadacao   Key = "arrecadacao"
	KeyTransparencia Key = "transparencia"
	KeyParticipacao  Key = "participacao"
)

func (k Key) Valid() bool {
	switch k {
	case KeyLGPD, KeyDigitalizacao, KeyArrecadacao, KeyTransparencia, KeyParticipacao:
		return true
	}
	return false
}

// Indicator is a catalog entry describing one maturity dimension.
type Indicator struct {
	Key         Key    `json:"key" yaml:"key"`
	Name        string `json:"name" yaml:"name"`
	FullName    string `json:"full_name" yaml:"full_name"`
	Solution    string `json:"solution" yaml:"solution"`
	Description string `json:"description" yaml:"description"`
}

// keys holds the canonical display order.
var keys = [...]Key{KeyLGPD, KeyDigitalizacao, KeyArrecadacao, KeyTransparencia, KeyParticipacao}

var catalog = map[Key]Indicator{
	KeyLGPD: {
		Key:         KeyLGPD,
		Name:        "LGPD",
		FullName:    "Lei Geral de Proteção de Dados",
		Solution:    "Consultoria LGPD + capacitação dos servidores",
		Description: "Adequação completa à legislação de proteção de dados",
	},
	KeyDigitalizacao: {
		Key:         KeyDigitalizacao,
		Name:        "Digitalização",
		FullName:    "Digitalização de Processos",
		Solution:    "Plataforma de gestão documental integrada",
		Description: "Modernização e automação de processos administrativos",
	},
	KeyArrecadacao: {
		Key:         KeyArrecadacao,
		Name:        "Arrecadação",
		FullName:    "Gestão de Arrecadação",
		Solution:    "Dashboard inteligente de receitas + BI",
		Description: "Monitoramento e otimização da arrecadação municipal",
	},
	KeyTransparencia: {
		Key:         KeyTransparencia,
		Name:        "Transparência",
		FullName:    "Transparência Pública",
		Solution:    "Portal de transparência avançado",
		Description: "Acesso facilitado a informações públicas para cidadãos",
	},
	KeyParticipacao: {
		Key:         KeyParticipacao,
		Name:        "Participação",
		FullName:    "Participação Cidadã",
		Solution:    "Plataforma de engajamento digital",
		Description: "Ferramentas para participação ativa dos cidadãos",
	},
}

// Keys returns the indicator keys in canonical order.
func Keys() []Key {
	out := make([]Key, len(keys))
	copy(out, keys[:])
	return out
}

// All returns every catalog entry in canonical order.
func All() []Indicator {
	out := make([]Indicator, 0, len(keys))
	for _, k := range keys {
		out = append(out, catalog[k])
	}
	return out
}

// Lookup returns the catalog entry for key.
func Lookup(key string) (Indicator, bool) {
	ind, ok := catalog[Key(key)]
	return ind, ok
}

// Count is the number of indicators in the catalog.
func Count() int { return len(keys) }
