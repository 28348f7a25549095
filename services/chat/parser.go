package chat

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"tallerchat/models"
)

// Extraction patterns. Prices require the currency symbol; a bare number is
// never treated as a price.
var (
	priceSuffixPattern = regexp.MustCompile(`(?i)\$\s*([\d.,]+)\s*(?:mil|k)\b`)
	pricePlainPattern  = regexp.MustCompile(`\$\s*([\d.,]+)`)
	priceTokenPattern  = regexp.MustCompile(`(?i)\$?\s*[\d.,]+(?:\s*(?:mil|k))?`)

	platePattern = regexp.MustCompile(`(?i)\b([A-Z]{3}[-\s]?\d{3})\b`)

	leadingWordsPattern = regexp.MustCompile(`^([A-Za-zÁÉÍÓÚÑáéíóúñ]+(?:\s+[A-Za-zÁÉÍÓÚÑáéíóúñ]+)?)`)
	nameTokenPattern    = regexp.MustCompile(`(?i)[a-záéíóúñ]{2,}`)

	structuredClient  = regexp.MustCompile(`(?i)^cliente:\s*(.+)`)
	structuredService = regexp.MustCompile(`(?i)^servicio:\s*(.+)`)
	structuredPrice   = regexp.MustCompile(`(?i)^precio:\s*(.+)`)
	structuredPlate   = regexp.MustCompile(`(?i)^placa:\s*(.+)`)
)

// nameStopwords are connective words that can never be part of a client name.
var nameStopwords = map[string]bool{
	"de": true, "la": true, "el": true, "los": true, "las": true,
	"un": true, "una": true, "del": true, "al": true, "para": true,
	"con": true, "por": true, "valor": true, "vino": true, "trajo": true,
	"llego": true, "pidio": true,
}

// Parser extracts service data from one chat message against a point-in-time
// snapshot of the shop's active catalog.
type Parser struct {
	catalog []models.ServiceDefinition
}

// NewParser builds a parser over the given catalog snapshot.
func NewParser(catalog []models.ServiceDefinition) *Parser {
	return &Parser{catalog: catalog}
}

// Parse extracts a ParsedService from the message. Messages in the structured
// pipe-delimited format take the structured path exclusively; everything else
// goes through natural-language extraction.
func (p *Parser) Parse(message string) models.ParsedService {
	if isStructured(message) {
		return p.parseStructured(message)
	}
	return p.parseNatural(message)
}

func isStructured(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "|") &&
		(strings.Contains(lower, "cliente:") || strings.Contains(lower, "servicio:"))
}

func (p *Parser) parseStructured(message string) models.ParsedService {
	var result models.ParsedService

	for _, part := range strings.Split(message, "|") {
		part = strings.TrimSpace(part)
		switch {
		case structuredClient.MatchString(part):
			raw := strings.TrimSpace(structuredClient.FindStringSubmatch(part)[1])
			result.ClientName = capitalizeWords(raw)
		case structuredService.MatchString(part):
			result.ServiceName = strings.TrimSpace(structuredService.FindStringSubmatch(part)[1])
		case structuredPrice.MatchString(part):
			raw := strings.TrimSpace(structuredPrice.FindStringSubmatch(part)[1])
			stripped := strings.Map(func(r rune) rune {
				if r == '$' || r == '.' || r == ',' || r == '\'' {
					return -1
				}
				return r
			}, raw)
			if n, err := strconv.ParseInt(stripped, 10, 64); err == nil {
				result.Price = n
			}
		case structuredPlate.MatchString(part):
			raw := strings.TrimSpace(structuredPlate.FindStringSubmatch(part)[1])
			result.Plate = NormalizePlate(raw)
		}
	}

	result.Complete = result.ServiceName != "" && result.Price > 0
	return result
}

func (p *Parser) parseNatural(message string) models.ParsedService {
	result := models.ParsedService{
		ServiceName: p.extractServiceName(message),
		Price:       extractPrice(message),
		Plate:       ExtractPlate(message),
	}
	result.ClientName = p.extractClientName(message)
	result.Complete = result.ServiceName != "" && result.Price > 0
	return result
}

// extractServiceName prefers an exact substring match against the active
// catalog, first match by catalog order; the canonical catalog name is
// returned, not the message's casing. Falls back to the message's leading
// words.
func (p *Parser) extractServiceName(message string) string {
	lower := strings.ToLower(message)
	for _, svc := range p.catalog {
		if strings.Contains(lower, strings.ToLower(svc.Name)) {
			return svc.Name
		}
	}

	match := leadingWordsPattern.FindStringSubmatch(message)
	if match == nil {
		return ""
	}
	return capitalize(match[1])
}

// extractPrice tries currency-prefixed patterns in order: "mil"/"k" suffixed
// first (so the plain pattern cannot shadow the multiplier), then plain
// grouped numbers.
func extractPrice(message string) int64 {
	if m := priceSuffixPattern.FindStringSubmatch(message); m != nil {
		if n := parseAmount(m[1]); n > 0 {
			if n < 1000 {
				n *= 1000
			}
			return n
		}
	}
	if m := pricePlainPattern.FindStringSubmatch(message); m != nil {
		if n := parseAmount(m[1]); n > 0 {
			return n
		}
	}
	return 0
}

func parseAmount(raw string) int64 {
	stripped := strings.Map(func(r rune) rune {
		if r == '.' || r == ',' {
			return -1
		}
		return r
	}, raw)
	n, err := strconv.ParseInt(stripped, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ExtractPlate finds a plate-shaped token and normalizes it.
func ExtractPlate(message string) string {
	match := platePattern.FindStringSubmatch(message)
	if match == nil {
		return ""
	}
	return NormalizePlate(match[1])
}

// NormalizePlate uppercases and strips separators. Idempotent.
func NormalizePlate(plate string) string {
	upper := strings.ToUpper(plate)
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, upper)
}

// extractClientName strips the plate, the price token and every catalog name
// from the message, then takes the last one or two remaining word tokens.
// Client names are expected to trail the sentence; this is best effort and
// the correction turn is the safety net.
func (p *Parser) extractClientName(message string) string {
	remaining := platePattern.ReplaceAllString(message, "")
	remaining = priceTokenPattern.ReplaceAllString(remaining, "")
	for _, svc := range p.catalog {
		pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(svc.Name))
		if err != nil {
			continue
		}
		remaining = pattern.ReplaceAllString(remaining, "")
	}

	var names []string
	for _, token := range nameTokenPattern.FindAllString(remaining, -1) {
		if len([]rune(token)) < 3 {
			continue
		}
		if nameStopwords[strings.ToLower(token)] {
			continue
		}
		names = append(names, token)
	}
	if len(names) == 0 {
		return ""
	}

	start := len(names) - 2
	if start < 0 {
		start = 0
	}
	last := names[start:]
	for i, n := range last {
		last[i] = capitalize(n)
	}
	return strings.Join(last, " ")
}

// capitalize upcases the first rune and downcases the rest.
func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func capitalizeWords(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
