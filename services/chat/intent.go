package chat

import (
	"regexp"
	"strings"

	"tallerchat/models"
)

// Intent is the category of user purpose assigned to one message.
type Intent string

const (
	IntentGreeting        Intent = "greeting"
	IntentHelp            Intent = "help"
	IntentCancel          Intent = "cancel"
	IntentConfirm         Intent = "confirm"
	IntentQueryToday      Intent = "query_today"
	IntentQueryDateRange  Intent = "query_date_range"
	IntentQueryDate       Intent = "query_date"
	IntentSearchPlate     Intent = "search_plate"
	IntentSearchClient    Intent = "search_client"
	IntentStatistics      Intent = "statistics"
	IntentRegisterService Intent = "register_service"
)

var (
	greetingWords = []string{"hola", "hello", "hi", "buenos", "buenas", "hey"}
	helpKeywords  = []string{"ayuda", "help", "comandos", "qué puedes hacer", "que puedes hacer"}
	cancelWords   = []string{"cancelar", "cancel", "no", "nope", "salir", "exit"}
	confirmWords  = []string{"sí", "si", "yes", "ok", "confirmar", "confirmo", "correcto", "listo", "dale"}

	queryTodayPhrases = []string{
		"servicios de hoy", "servicios hoy", "cuántos servicios",
		"cuantos servicios", "resumen del día", "resumen",
	}
	queryDateKeywords = []string{
		"ventas de", "ventas del", "servicios de", "servicios del",
		"lo de", "ayer", "antier",
	}
	statsKeywords = []string{
		"total vendido", "cuánto llevo", "cuanto llevo",
		"estadísticas", "estadisticas", "servicio más popular", "servicio mas popular",
	}

	dateRangePattern  = regexp.MustCompile(`(?i)(?:desde|entre)\s+(.+?)\s+(?:hasta|y)\s+(.+)`)
	dateLikePattern   = regexp.MustCompile(`\d{1,2}[/\-.]\d{1,2}`)
	plateShapePattern = regexp.MustCompile(`(?i)[A-Z]{3}[-\s]?\d{3}`)
	plateSearchPattern = regexp.MustCompile(
		`(?i)(?:buscar|historial|cuándo vino|cuando vino)\s+[A-Z]{3}[-\s]?\d{3}`)
)

// intentCheck is one predicate of the classifier. Checks run in declaration
// order and the first match wins; later checks can never bypass earlier ones.
type intentCheck struct {
	intent Intent
	match  func(lower, state string) bool
}

var intentChecks = []intentCheck{
	{IntentGreeting, func(lower, _ string) bool {
		for _, g := range greetingWords {
			if strings.HasPrefix(lower, g) {
				return true
			}
		}
		return false
	}},
	{IntentHelp, func(lower, _ string) bool {
		return containsAny(lower, helpKeywords)
	}},
	// Cancel words must match the whole message; "no pude venir ayer" is not
	// a cancellation.
	{IntentCancel, func(lower, _ string) bool {
		for _, c := range cancelWords {
			if lower == c {
				return true
			}
		}
		return false
	}},
	{IntentConfirm, func(lower, state string) bool {
		if state != models.StateAwaitingConfirmation {
			return false
		}
		return containsAny(lower, confirmWords)
	}},
	{IntentQueryToday, func(lower, _ string) bool {
		return containsAny(lower, queryTodayPhrases)
	}},
	{IntentQueryDateRange, func(lower, _ string) bool {
		return dateRangePattern.MatchString(lower)
	}},
	{IntentQueryDate, func(lower, _ string) bool {
		hasKeyword := containsAny(lower, queryDateKeywords)
		hasDate := dateLikePattern.MatchString(lower)
		if hasKeyword && (hasDate || strings.Contains(lower, "ayer") || strings.Contains(lower, "antier")) {
			return true
		}
		// A bare date string like "15/12". A currency amount ("$35.000")
		// also matches the date shape; the $ rules it out.
		return hasDate && len(lower) < 20 && !strings.Contains(lower, "$")
	}},
	{IntentSearchPlate, func(lower, _ string) bool {
		return plateSearchPattern.MatchString(lower)
	}},
	{IntentSearchClient, func(lower, _ string) bool {
		if !strings.Contains(lower, "servicios de") && !strings.Contains(lower, "historial de") {
			return false
		}
		return !plateShapePattern.MatchString(lower)
	}},
	{IntentStatistics, func(lower, _ string) bool {
		return containsAny(lower, statsKeywords)
	}},
}

// Classify assigns an intent to the message given the current conversation
// state. Pure: no side effects on either argument.
func Classify(message, state string) Intent {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, check := range intentChecks {
		if check.match(lower, state) {
			return check.intent
		}
	}
	return IntentRegisterService
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
