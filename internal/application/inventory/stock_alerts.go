package inventory

import (
	"github.com/robfig/cron/v3"

	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
	"github.com/jfvaldes/ventapro-api/pkg/logger"
	"github.com/jfvaldes/ventapro-api/pkg/metrics"
)

// StockAlertMonitor revisa periódicamente los productos bajo mínimo y los
// reporta al Notifier. El cron spec incluye el campo de segundos.
type StockAlertMonitor struct {
	productRepo repository.ProductRepository
	notifier    Notifier
	log         *logger.Logger
	scheduler   *cron.Cron
	spec        string
}

// NewStockAlertMonitor construye el monitor sin arrancarlo.
func NewStockAlertMonitor(productRepo repository.ProductRepository, notifier Notifier, log *logger.Logger, spec string) *StockAlertMonitor {
	return &StockAlertMonitor{
		productRepo: productRepo,
		notifier:    notifier,
		log:         log,
		scheduler:   cron.New(cron.WithSeconds()),
		spec:        spec,
	}
}

// Start agenda la revisión y arranca el scheduler.
func (m *StockAlertMonitor) Start() error {
	if _, err := m.scheduler.AddFunc(m.spec, m.Check); err != nil {
		return err
	}
	m.scheduler.Start()
	m.log.Info().Str("cron", m.spec).Msg("monitor de stock bajo iniciado")
	return nil
}

// Stop detiene el scheduler y espera a que termine la corrida en curso.
func (m *StockAlertMonitor) Stop() {
	<-m.scheduler.Stop().Done()
}

// Check corre una revisión. El cron la invoca, pero también se puede llamar
// directo.
func (m *StockAlertMonitor) Check() {
	products, err := m.productRepo.ListBelowMinimum()
	if err != nil {
		m.log.Error().Err(err).Msg("revisión de stock bajo falló")
		return
	}
	metrics.LowStockProducts.Set(float64(len(products)))
	if len(products) == 0 {
		return
	}
	m.notifier.NotifyLowStock(products)
}

// LogNotifier implementación de Notifier que escribe las alertas en el log.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// NotifyLowStock escribe una línea de warning por producto bajo mínimo.
func (n *LogNotifier) NotifyLowStock(products []*entity.Product) {
	for _, p := range products {
		n.log.Warn().
			Str("product_id", p.ID).
			Str("name", p.Name).
			Int("quantity", p.Quantity).
			Int("min_quantity", p.MinQuantity).
			Msg("producto con stock bajo")
	}
}
