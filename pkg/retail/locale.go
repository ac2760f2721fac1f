package retail

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Brazilian locale tables. They are read-only and shared by every Generator.

var firstNames = []string{
	"Ana", "Beatriz", "Bruna", "Camila", "Carolina", "Clara", "Daniela", "Fernanda",
	"Gabriela", "Isabela", "Júlia", "Larissa", "Letícia", "Luana", "Mariana", "Maria",
	"Natália", "Patrícia", "Rafaela", "Sofia", "Vitória", "Alice", "Helena", "Lívia",
	"André", "Antônio", "Bruno", "Carlos", "Daniel", "Diego", "Eduardo", "Felipe",
	"Gabriel", "Gustavo", "Henrique", "João", "José", "Leonardo", "Lucas", "Luiz",
	"Marcelo", "Matheus", "Miguel", "Paulo", "Pedro", "Rafael", "Rodrigo", "Thiago",
	"Vinícius", "Davi", "Heitor", "Enzo", "Caio", "Otávio",
}

var lastNames = []string{
	"Silva", "Santos", "Oliveira", "Souza", "Rodrigues", "Ferreira", "Alves", "Pereira",
	"Lima", "Gomes", "Costa", "Ribeiro", "Martins", "Carvalho", "Almeida", "Lopes",
	"Soares", "Fernandes", "Vieira", "Barbosa", "Rocha", "Dias", "Nascimento", "Andrade",
	"Moreira", "Nunes", "Marques", "Machado", "Mendes", "Freitas", "Cardoso", "Ramos",
	"Gonçalves", "Santana", "Teixeira", "Araújo", "Pinto", "Correia", "Cavalcanti", "Monteiro",
}

var streetTypes = []string{"Rua", "Avenida", "Travessa", "Alameda", "Praça", "Rodovia"}

var streetNames = []string{
	"das Flores", "Sete de Setembro", "Quinze de Novembro", "Tiradentes", "Brasil",
	"Getúlio Vargas", "Santos Dumont", "Dom Pedro II", "XV de Agosto", "da Liberdade",
	"Marechal Deodoro", "Rui Barbosa", "José Bonifácio", "Castro Alves", "das Palmeiras",
	"Paulista", "Atlântica", "Afonso Pena", "Boa Viagem", "Sete Lagoas",
	"do Comércio", "da Consolação", "Presidente Vargas", "Barão de Mauá", "dos Andradas",
}

var neighborhoods = []string{
	"Centro", "Jardim América", "Vila Nova", "Boa Vista", "Santa Cecília", "Copacabana",
	"Savassi", "Moinhos de Vento", "Pinheiros", "Barra", "Aldeota", "Batel",
	"Bela Vista", "Funcionários", "Jardim Botânico", "São Francisco", "Cidade Nova",
}

var emailDomains = []string{
	"gmail.com", "hotmail.com", "yahoo.com.br", "outlook.com", "uol.com.br", "bol.com.br", "terra.com.br",
}

// productWords are appended to product names after brand and subcategory.
var productWords = []string{
	"Alpha", "Prime", "Nova", "Plus", "Max", "Eco", "Lux", "Pro", "Vida", "Sol",
	"Mar", "Brisa", "Aurora", "Estrela", "Flor", "Terra", "Rio", "Lua", "Onda", "Ponto",
	"Casa", "Cor", "Luz", "Fibra", "Linha", "Forma", "Toque", "Sabor", "Jardim", "Vento",
}

// statesUF lists every federative unit, in alphabetical order.
var statesUF = []string{
	"AC", "AL", "AM", "AP", "BA", "CE", "DF", "ES", "GO", "MA", "MG", "MS", "MT", "PA",
	"PB", "PE", "PI", "PR", "RJ", "RN", "RO", "RR", "RS", "SC", "SE", "SP", "TO",
}

// citiesByState has at least one city (the capital, first) per UF.
var citiesByState = map[string][]string{
	"AC": {"Rio Branco", "Cruzeiro do Sul"},
	"AL": {"Maceió", "Arapiraca"},
	"AM": {"Manaus", "Parintins"},
	"AP": {"Macapá", "Santana"},
	"BA": {"Salvador", "Feira de Santana", "Vitória da Conquista", "Ilhéus"},
	"CE": {"Fortaleza", "Juazeiro do Norte", "Sobral"},
	"DF": {"Brasília", "Taguatinga"},
	"ES": {"Vitória", "Vila Velha", "Serra"},
	"GO": {"Goiânia", "Anápolis", "Rio Verde"},
	"MA": {"São Luís", "Imperatriz"},
	"MG": {"Belo Horizonte", "Uberlândia", "Juiz de Fora", "Contagem"},
	"MS": {"Campo Grande", "Dourados"},
	"MT": {"Cuiabá", "Várzea Grande", "Rondonópolis"},
	"PA": {"Belém", "Ananindeua", "Santarém"},
	"PB": {"João Pessoa", "Campina Grande"},
	"PE": {"Recife", "Olinda", "Caruaru", "Petrolina"},
	"PI": {"Teresina", "Parnaíba"},
	"PR": {"Curitiba", "Londrina", "Maringá", "Foz do Iguaçu"},
	"RJ": {"Rio de Janeiro", "Niterói", "Petrópolis", "Duque de Caxias"},
	"RN": {"Natal", "Mossoró"},
	"RO": {"Porto Velho", "Ji-Paraná"},
	"RR": {"Boa Vista"},
	"RS": {"Porto Alegre", "Caxias do Sul", "Pelotas", "Santa Maria"},
	"SC": {"Florianópolis", "Joinville", "Blumenau", "Chapecó"},
	"SE": {"Aracaju", "Lagarto"},
	"SP": {"São Paulo", "Campinas", "Santos", "Ribeirão Preto", "Sorocaba", "São José dos Campos"},
	"TO": {"Palmas", "Araguaína"},
}

// areaCodes holds the DDD of each state's capital region.
var areaCodes = map[string]int{
	"AC": 68, "AL": 82, "AM": 92, "AP": 96, "BA": 71, "CE": 85, "DF": 61, "ES": 27, "GO": 62,
	"MA": 98, "MG": 31, "MS": 67, "MT": 65, "PA": 91, "PB": 83, "PE": 81, "PI": 86, "PR": 41,
	"RJ": 21, "RN": 84, "RO": 69, "RR": 95, "RS": 51, "SC": 48, "SE": 79, "SP": 11, "TO": 63,
}

// IsValidUF reports whether s is a Brazilian federative unit abbreviation.
func IsValidUF(s string) bool {
	_, ok := citiesByState[s]
	return ok
}

// person is a generated name pair.
type person struct {
	first, last string
}

func (p person) full() string { return p.first + " " + p.last }

func newPerson(r *rand.Rand) person {
	return person{first: pick(r, firstNames), last: pick(r, lastNames)}
}

// email builds an ASCII mailbox from a person's name.
func (p person) email(r *rand.Rand) string {
	local := asciiFold(p.first) + "." + asciiFold(p.last)
	if n := r.IntN(100); n >= 50 {
		local = fmt.Sprintf("%s%d", local, n)
	}
	return local + "@" + pick(r, emailDomains)
}

func phone(r *rand.Rand, state string) string {
	return fmt.Sprintf("+55 (%d) 9%04d-%04d", areaCodes[state], r.IntN(10000), r.IntN(10000))
}

func postalCode(r *rand.Rand) string {
	return fmt.Sprintf("%05d-%03d", r.IntN(100000), r.IntN(1000))
}

func streetAddress(r *rand.Rand) string {
	return fmt.Sprintf("%s %s, %d", pick(r, streetTypes), pick(r, streetNames), 1+r.IntN(9999))
}

// cityIn returns a city located in state.
func cityIn(r *rand.Rand, state string) string {
	return pick(r, citiesByState[state])
}

// fullAddress renders a single-line postal address.
func fullAddress(r *rand.Rand) string {
	street := streetAddress(r)
	bairro := pick(r, neighborhoods)
	state := pick(r, statesUF)
	city := cityIn(r, state)
	return fmt.Sprintf("%s, %s, %s %s / %s", street, bairro, postalCode(r), city, state)
}

// asciiFold strips diacritics and lowercases s, dropping anything that is
// not a letter or digit.
func asciiFold(s string) string {
	// chained transformers carry buffers, so build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	for _, c := range strings.ToLower(folded) {
		if c < unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c)) {
			b.WriteRune(c)
		}
	}
	return b.String()
}
