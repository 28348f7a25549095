package chat

import (
	"context"
	"regexp"
	"strings"
	"time"

	catalogRepo "tallerchat/database/repository/catalog"
	conversationRepo "tallerchat/database/repository/conversation"
	"tallerchat/models"

	"go.uber.org/zap"
)

var clientSearchTriggers = regexp.MustCompile(`(?i)servicios de|historial de`)

// MessageProcessor is the orchestrator: one incoming message in, one
// ChatResult out, conversation state updated as a side effect.
type MessageProcessor interface {
	Process(ctx context.Context, shopID, message string) models.ChatResult
}

// DefaultMessageProcessor implements MessageProcessor.
type DefaultMessageProcessor struct {
	Conversations conversationRepo.ConversationRepository
	Catalog       catalogRepo.CatalogRepository
	Query         QueryService
	Registrar     RegistrationService
	Logger        *zap.Logger
	Now           func() time.Time

	locks conversationLocks
}

func (p *DefaultMessageProcessor) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func errorResult(response string) models.ChatResult {
	return models.ChatResult{
		Success:  false,
		Response: response,
		Action:   models.ActionError,
		Data:     map[string]any{},
	}
}

// Process loads the shop's conversation, appends the user message, handles it
// according to the classified intent, appends the assistant response and
// saves. The whole read-modify-write is serialized per shop conversation.
func (p *DefaultMessageProcessor) Process(ctx context.Context, shopID, message string) models.ChatResult {
	message = strings.TrimSpace(message)

	unlock := p.locks.lock(shopID)
	defer unlock()

	conv, err := p.Conversations.ActiveForShop(ctx, shopID)
	if err != nil {
		p.Logger.Error("processor: failed to load conversation",
			zap.String("shopId", shopID), zap.Error(err))
		return errorResult(genericError)
	}

	conv.AddMessage("user", message, "", p.now())

	result := p.handle(ctx, shopID, conv, message)

	conv.AddMessage("assistant", result.Response, result.Action, p.now())
	if err := p.Conversations.Save(ctx, conv); err != nil {
		p.Logger.Error("processor: failed to save conversation",
			zap.String("shopId", shopID), zap.Error(err))
	}
	return result
}

// handle dispatches on intent. Every path returns a response; an uncaught
// fault becomes the generic error response instead of reaching the transport.
func (p *DefaultMessageProcessor) handle(ctx context.Context, shopID string, conv *models.Conversation, message string) (result models.ChatResult) {
	defer func() {
		if r := recover(); r != nil {
			p.Logger.Error("processor: panic while handling message",
				zap.String("shopId", shopID), zap.Any("panic", r))
			result = errorResult(genericError)
		}
	}()

	switch Classify(message, conv.State) {
	case IntentGreeting:
		conv.Reset(p.now())
		return models.ChatResult{
			Success:  true,
			Response: greetingResponse,
			Action:   models.ActionGreeting,
			Data:     map[string]any{},
		}
	case IntentHelp:
		return models.ChatResult{
			Success:  true,
			Response: renderHelpCard(),
			Action:   models.ActionHelp,
			Data:     map[string]any{},
		}
	case IntentCancel:
		conv.Reset(p.now())
		return models.ChatResult{
			Success:  true,
			Response: cancelResponse,
			Action:   models.ActionCancel,
			Data:     map[string]any{},
		}
	case IntentConfirm:
		return p.handleConfirm(ctx, shopID, conv)
	case IntentQueryToday:
		return p.handleQueryToday(ctx, shopID)
	case IntentQueryDateRange:
		return p.handleQueryDateRange(ctx, shopID, message)
	case IntentQueryDate:
		return p.handleQueryDate(ctx, shopID, message)
	case IntentSearchPlate:
		return p.handleSearchPlate(ctx, shopID, message)
	case IntentSearchClient:
		return p.handleSearchClient(ctx, shopID, message)
	case IntentStatistics:
		return p.handleStatistics(ctx, shopID)
	default:
		return p.handleRegistration(ctx, shopID, conv, message)
	}
}

// handleRegistration parses the message, merges with whatever the
// conversation already knows, and either asks for confirmation or for the
// missing fields. A complete extraction is never registered without an
// explicit confirm turn.
func (p *DefaultMessageProcessor) handleRegistration(ctx context.Context, shopID string, conv *models.Conversation, message string) models.ChatResult {
	catalog, err := p.Catalog.ActiveServices(ctx, shopID)
	if err != nil {
		p.Logger.Error("processor: failed to snapshot catalog",
			zap.String("shopId", shopID), zap.Error(err))
		return errorResult(genericError)
	}

	parsed := NewParser(catalog).Parse(message)
	merged := conv.PendingData().Merge(parsed)

	if merged.Complete {
		conv.UpdateState(models.StateAwaitingConfirmation, parsed, p.now())
		return models.ChatResult{
			Success:  true,
			Response: renderConfirmationCard(merged),
			Action:   models.ActionConfirmation,
			Data:     parsedToMap(merged),
		}
	}

	var missing []string
	if merged.ServiceName == "" {
		missing = append(missing, "tipo de servicio")
	}
	if merged.Price <= 0 {
		missing = append(missing, "precio")
	}
	conv.UpdateState(models.StateAwaitingCorrection, parsed, p.now())
	return models.ChatResult{
		Success:  true,
		Response: renderIncomplete(missing),
		Action:   models.ActionIncomplete,
		Data:     parsedToMap(merged),
	}
}

// handleConfirm registers the pending data. The conversation resets whether
// the registration succeeded or not; a failed confirmation never leaves the
// flow stuck.
func (p *DefaultMessageProcessor) handleConfirm(ctx context.Context, shopID string, conv *models.Conversation) models.ChatResult {
	data := conv.PendingData()
	regResult := p.Registrar.Register(ctx, shopID, data)
	conv.Reset(p.now())

	if !regResult.Success {
		msg := internalErrorMessage
		if len(regResult.Errors) > 0 {
			msg = regResult.Errors[0]
		}
		return models.ChatResult{
			Success:  false,
			Response: renderErrorCard(msg),
			Action:   models.ActionError,
			Data:     map[string]any{},
		}
	}

	return models.ChatResult{
		Success:  true,
		Response: renderSuccessCard(regResult.Record),
		Action:   models.ActionRegistered,
		Data:     map[string]any{"serviceRecordId": regResult.Record.ID},
	}
}

func (p *DefaultMessageProcessor) handleQueryToday(ctx context.Context, shopID string) models.ChatResult {
	records, err := p.Query.ServicesToday(ctx, shopID)
	if err != nil {
		p.Logger.Error("processor: query today failed", zap.Error(err))
		return errorResult(genericError)
	}
	return models.ChatResult{
		Success:  true,
		Response: renderServicesListCard(records, "Servicios de hoy"),
		Action:   models.ActionQuery,
		Data:     map[string]any{"count": len(records)},
	}
}

func (p *DefaultMessageProcessor) handleQueryDate(ctx context.Context, shopID, message string) models.ChatResult {
	now := p.now()
	date, ok := ResolveDate(message, now)
	if !ok {
		return errorResult(dateParseError)
	}

	records, err := p.Query.ServicesOn(ctx, shopID, date)
	if err != nil {
		p.Logger.Error("processor: query by date failed", zap.Error(err))
		return errorResult(genericError)
	}

	today := truncateToDay(now)
	var title string
	switch {
	case date.Equal(today.AddDate(0, 0, -1)):
		title = "Servicios de ayer"
	case date.Equal(today):
		title = "Servicios de hoy"
	default:
		title = "Servicios del " + date.Format("02/01/2006")
	}

	return models.ChatResult{
		Success:  true,
		Response: renderServicesListCard(records, title),
		Action:   models.ActionQuery,
		Data:     map[string]any{"count": len(records), "date": date.Format("2006-01-02")},
	}
}

func (p *DefaultMessageProcessor) handleQueryDateRange(ctx context.Context, shopID, message string) models.ChatResult {
	match := dateRangePattern.FindStringSubmatch(message)
	if match == nil {
		return errorResult(rangeParseError)
	}

	now := p.now()
	start, okStart := ResolveDate(match[1], now)
	end, okEnd := ResolveDate(match[2], now)
	if !okStart || !okEnd {
		return errorResult(rangeParseError)
	}

	records, err := p.Query.ServicesInRange(ctx, shopID, start, end)
	if err != nil {
		p.Logger.Error("processor: query by range failed", zap.Error(err))
		return errorResult(genericError)
	}

	title := "Servicios del " + start.Format("02/01") + " al " + end.Format("02/01")
	return models.ChatResult{
		Success:  true,
		Response: renderServicesListCard(records, title),
		Action:   models.ActionQuery,
		Data: map[string]any{
			"count":     len(records),
			"startDate": start.Format("2006-01-02"),
			"endDate":   end.Format("2006-01-02"),
		},
	}
}

func (p *DefaultMessageProcessor) handleSearchPlate(ctx context.Context, shopID, message string) models.ChatResult {
	raw := plateShapePattern.FindString(message)
	if raw == "" {
		return errorResult(genericError)
	}

	records, err := p.Query.SearchByPlate(ctx, shopID, raw)
	if err != nil {
		p.Logger.Error("processor: plate search failed", zap.Error(err))
		return errorResult(genericError)
	}

	plate := NormalizePlate(raw)
	return models.ChatResult{
		Success:  true,
		Response: renderServicesListCard(records, "Historial de "+strings.ToUpper(raw)),
		Action:   models.ActionQuery,
		Data:     map[string]any{"plate": plate, "count": len(records)},
	}
}

func (p *DefaultMessageProcessor) handleSearchClient(ctx context.Context, shopID, message string) models.ChatResult {
	name := strings.TrimSpace(clientSearchTriggers.ReplaceAllString(message, ""))
	if name == "" {
		return errorResult(genericError)
	}

	records, err := p.Query.SearchByClient(ctx, shopID, name)
	if err != nil {
		p.Logger.Error("processor: client search failed", zap.Error(err))
		return errorResult(genericError)
	}

	return models.ChatResult{
		Success:  true,
		Response: renderServicesListCard(records, "Servicios de "+capitalize(name)),
		Action:   models.ActionQuery,
		Data:     map[string]any{"client": name, "count": len(records)},
	}
}

func (p *DefaultMessageProcessor) handleStatistics(ctx context.Context, shopID string) models.ChatResult {
	stats, err := p.Query.StatisticsToday(ctx, shopID)
	if err != nil {
		p.Logger.Error("processor: statistics failed", zap.Error(err))
		return errorResult(genericError)
	}
	return models.ChatResult{
		Success:  true,
		Response: renderStatisticsCard(stats),
		Action:   models.ActionStatistics,
		Data: map[string]any{
			"count":              stats.Count,
			"totalRevenue":       stats.TotalRevenue,
			"highestPrice":       stats.HighestPrice,
			"mostPopularService": stats.MostPopularService,
			"clientsServed":      stats.ClientsServed,
		},
	}
}

func parsedToMap(parsed models.ParsedService) map[string]any {
	return map[string]any{
		"serviceName": parsed.ServiceName,
		"price":       parsed.Price,
		"plate":       parsed.Plate,
		"clientName":  parsed.ClientName,
		"notes":       parsed.Notes,
		"complete":    parsed.Complete,
	}
}
