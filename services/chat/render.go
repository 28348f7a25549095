package chat

import (
	"fmt"
	"strings"

	"tallerchat/models"
)

// Response bodies are part of the product's voice; wording, emoji and markup
// are kept exactly as users know them.

const (
	greetingResponse = "¡Hola! 👋 Estoy listo para registrar tus servicios.\n\nEscribe algo como:\n*\"Lavado completo $35.000 ABC123 Juan\"*"
	cancelResponse   = "❌ Operación cancelada. ¿En qué más te puedo ayudar?"
	genericError     = "❌ Ocurrió un error. Por favor intenta de nuevo."
	dateParseError   = "No pude entender la fecha. Intenta con formatos como 'ayer', '15/12' o '15 de diciembre'."
	rangeParseError  = "No pude entender las fechas del rango. Intenta 'desde 15/12 hasta 16/12'."
)

// FormatPrice renders an amount with dot thousands grouping, e.g. 35000 ->
// "35.000".
func FormatPrice(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	if len(digits) <= 3 {
		return digits
	}
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	return digits + "." + strings.Join(groups, ".")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func renderConfirmationCard(parsed models.ParsedService) string {
	priceDisplay := "precio?"
	if parsed.Price > 0 {
		priceDisplay = "$" + FormatPrice(parsed.Price)
	}
	return fmt.Sprintf(`<div class="confirmation-card">
  <div class="confirmation-header">
    <div class="confirmation-icon">📝</div>
    <div class="confirmation-title">Confirmar servicio</div>
  </div>
  <div class="confirmation-body">
    <div class="confirmation-item">
      <span class="item-label">Servicio</span>
      <span class="item-value">%s</span>
    </div>
    <div class="confirmation-item">
      <span class="item-label">Precio</span>
      <span class="item-value price">%s</span>
    </div>
    <div class="confirmation-item">
      <span class="item-label">Cliente</span>
      <span class="item-value">%s</span>
    </div>
    <div class="confirmation-item">
      <span class="item-label">Placa</span>
      <span class="item-value">%s</span>
    </div>
  </div>
  <div class="confirmation-footer">
    ¿Es correcto? Responde *sí* o *no*
  </div>
</div>`,
		orDefault(parsed.ServiceName, "No especificado"),
		priceDisplay,
		orDefault(parsed.ClientName, "No especificado"),
		orDefault(parsed.Plate, "No especificada"))
}

func renderSuccessCard(record *models.ServiceRecord) string {
	plateRow := ""
	if record.VehiclePlate != "" {
		plateRow = fmt.Sprintf(`<div class="detail-row"><span class="detail-label">Placa:</span><span class="detail-value">%s</span></div>`, record.VehiclePlate)
	}
	return fmt.Sprintf(`<div class="success-card">
  <div class="success-header">
    <span class="success-icon">✅</span>
    <h3>¡Servicio registrado!</h3>
  </div>
  <div class="success-details">
    <div class="detail-row">
      <span class="detail-label">Servicio:</span>
      <span class="detail-value">%s</span>
    </div>
    <div class="detail-row">
      <span class="detail-label">Cliente:</span>
      <span class="detail-value">%s</span>
    </div>
    <div class="detail-row">
      <span class="detail-label">Precio:</span>
      <span class="detail-value">$%s</span>
    </div>
    %s
  </div>
</div>`,
		record.ServiceName,
		orDefault(record.ClientName, "Cliente"),
		FormatPrice(record.Price),
		plateRow)
}

func renderErrorCard(errorMessage string) string {
	return fmt.Sprintf(`<div class="error-card">
  <div class="error-header">
    <span class="error-icon">❌</span>
    <h3>Error al registrar servicio</h3>
  </div>
  <div class="error-message">
    %s
  </div>
  <div class="error-hint">
    💡 Puedes crear nuevos servicios en <a href="/services">Gestión de Servicios</a>
  </div>
</div>`, errorMessage)
}

func renderIncomplete(missing []string) string {
	return fmt.Sprintf("🤔 Me falta información:\n\n• %s\n\nPor favor completa los datos.",
		strings.Join(missing, "\n• "))
}

func renderHelpCard() string {
	return `<div class="help-card">
  <div class="help-header">
    <div class="help-icon">💡</div>
    <div class="help-title">Comandos disponibles</div>
  </div>
  <div class="help-body">
    <div class="help-section">
      <div class="help-section-title">📝 Registrar servicios</div>
      <div class="help-example">Ej: Lavado motor $50000 ABC123 Juan</div>
    </div>
    <div class="help-section">
      <div class="help-section-title">📊 Consultas</div>
      <div class="help-example">• "Servicios de hoy"</div>
      <div class="help-example">• "Ventas de ayer"</div>
      <div class="help-example">• "Desde 10/12 hasta 15/12"</div>
      <div class="help-example">• "Servicios del (dd/mm)"</div>
      <div class="help-example">• "Buscar ABC123"</div>
      <div class="help-example">• "Servicios de Juan"</div>
      <div class="help-example">• "Total vendido hoy"</div>
    </div>
  </div>
</div>`
}

func renderServicesListCard(records []models.ServiceRecord, title string) string {
	if len(records) == 0 {
		return fmt.Sprintf(`<div class="info-card">
  <div class="info-header">
    <div class="info-icon">📋</div>
    <div class="info-title">%s</div>
  </div>
  <div class="info-body">
    <p style="color: #94A3B8; text-align: center; padding: 20px;">No se encontraron servicios</p>
  </div>
</div>`, title)
	}

	var items strings.Builder
	for _, rec := range records {
		items.WriteString(fmt.Sprintf(`<div class="service-list-item">
  <div class="service-list-main">
    <span class="service-list-name">%s</span>
    <span class="service-list-price">$%s</span>
  </div>
  <div class="service-list-meta">
    <span>👤 %s</span>
    <span>🚗 %s</span>
    <span>🕐 %s</span>
  </div>
</div>`,
			rec.ServiceName,
			FormatPrice(rec.Price),
			orDefault(rec.ClientName, "Cliente"),
			orDefault(rec.VehiclePlate, "-"),
			rec.ServiceDate.Format("15:04")))
	}

	return fmt.Sprintf(`<div class="info-card">
  <div class="info-header">
    <div class="info-icon">📋</div>
    <div class="info-title">%s</div>
    <div class="info-badge">%d</div>
  </div>
  <div class="info-body">
    %s
  </div>
</div>`, title, len(records), items.String())
}

func renderStatisticsCard(stats models.DailyStatistics) string {
	return fmt.Sprintf(`<div class="stats-card">
  <div class="stats-header">
    <div class="stats-icon">📊</div>
    <div class="stats-title">Estadísticas de hoy</div>
  </div>
  <div class="stats-body">
    <div class="stat-item">
      <div class="stat-value">%d</div>
      <div class="stat-label">Servicios</div>
    </div>
    <div class="stat-item">
      <div class="stat-value">$%s</div>
      <div class="stat-label">Total vendido</div>
    </div>
    <div class="stat-item">
      <div class="stat-value">$%s</div>
      <div class="stat-label">Servicio más caro</div>
    </div>
    <div class="stat-item">
      <div class="stat-value">%d</div>
      <div class="stat-label">Clientes</div>
    </div>
  </div>
  <div class="stats-footer">
    <strong>Servicio más popular:</strong> %s
  </div>
</div>`,
		stats.Count,
		FormatPrice(stats.TotalRevenue),
		FormatPrice(stats.HighestPrice),
		stats.ClientsServed,
		orDefault(stats.MostPopularService, "N/A"))
}
