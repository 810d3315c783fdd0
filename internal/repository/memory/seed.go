package memory

import (
	"context"

	"go.uber.org/zap"

	"github.com/wapsender/totalshophn/internal/domain"
	"github.com/wapsender/totalshophn/internal/repository"
)

func ptr(v float64) *float64 { return &v }

// SeedDemoData loads the demo catalog, coupons, categories, FAQs and the
// bootstrap admin account. Intended for development; production deployments
// load their own data through the admin API.
func SeedDemoData(repos *repository.Repositories, logger *zap.Logger) error {
	ctx := context.Background()

	products := []*domain.Product{
		{
			ID:            "1",
			Name:          "Servicio de Streaming - 1 Mes",
			Description:   "Acceso a miles de películas y series. Plan premium.",
			Price:         15.99,
			OfferPrice:    ptr(13.99),
			ResellerPrice: ptr(12.99),
			Image:         "https://placehold.co/400x300.png",
			ImageHint:     "television screen",
			Category:      "Streaming",
			Stock: []domain.StockUnit{
				{Kind: domain.StockKindCredentials, Value: "user1@email.com:pass123", Credentials: &domain.Credential{Email: "user1@email.com", Password: "pass123"}},
				{Kind: domain.StockKindCredentials, Value: "user2@email.com:pass123", Credentials: &domain.Credential{Email: "user2@email.com", Password: "pass123"}},
			},
		},
		{
			ID:            "2",
			Name:          "Licencia de Windows Pro",
			Description:   "Clave de licencia genuina para Windows 11 Professional.",
			Price:         49.99,
			ResellerPrice: ptr(39.99),
			Image:         "https://placehold.co/400x300.png",
			ImageHint:     "software interface",
			Category:      "Software",
			Stock: []domain.StockUnit{
				{Kind: domain.StockKindCode, Value: "WINPRO-AAAA-BBBB-CCCC-DDDD"},
				{Kind: domain.StockKindCode, Value: "WINPRO-EEEE-FFFF-GGGG-HHHH"},
			},
		},
		{
			ID:            "3",
			Name:          "Software Antivirus - 1 Año",
			Description:   "Protección completa para tu PC contra virus y malware.",
			Price:         29.99,
			ResellerPrice: ptr(24.99),
			Image:         "https://placehold.co/400x300.png",
			ImageHint:     "security shield",
			Category:      "Seguridad",
			Stock:         []domain.StockUnit{},
		},
		{
			ID:          "4",
			Name:        "Servicio VPN - 1 Año",
			Description: "Acceso a internet seguro y privado en todos tus dispositivos.",
			Price:       39.99,
			Image:       "https://placehold.co/400x300.png",
			ImageHint:   "network connection",
			Category:    "Seguridad",
			Stock:       []domain.StockUnit{},
		},
		{
			ID:            "5",
			Name:          "Almacenamiento en la Nube - Plan 1TB",
			Description:   "1TB de almacenamiento seguro en la nube para tus archivos y fotos.",
			Price:         9.99,
			ResellerPrice: ptr(7.99),
			Image:         "https://placehold.co/400x300.png",
			ImageHint:     "cloud data",
			Category:      "Servicios",
			Stock:         []domain.StockUnit{},
		},
	}

	// Seed in reverse so listing order matches the declaration order above
	// (AddProduct prepends).
	for i := len(products) - 1; i >= 0; i-- {
		if err := repos.Catalog.AddProduct(ctx, products[i]); err != nil {
			return err
		}
	}

	coupons := []*domain.Coupon{
		{ID: "1", Code: "SAVE10", DiscountType: domain.DiscountPercentage, Value: 10, Quantity: 20, Uses: 5},
		{ID: "2", Code: "HNSPECIAL", DiscountType: domain.DiscountFixed, Value: 5, Quantity: 10, Uses: 2},
	}
	for i := len(coupons) - 1; i >= 0; i-- {
		c := coupons[i]
		uses := c.Uses
		if err := repos.Catalog.AddCoupon(ctx, c); err != nil {
			return err
		}
		// AddCoupon zeroes uses for fresh coupons; restore the seeded counter
		c.Uses = uses
		if err := repos.Catalog.UpdateCoupon(ctx, c); err != nil {
			return err
		}
	}

	for _, name := range []string{"Streaming", "Software", "Seguridad", "Servicios"} {
		if err := repos.Catalog.AddCategory(ctx, &domain.Category{Name: name}); err != nil {
			return err
		}
	}

	if cr, ok := repos.Catalog.(*catalogRepository); ok {
		cr.mu.Lock()
		cr.faqs = demoFAQs
		cr.mu.Unlock()
	}

	// Bootstrap admin; uid is re-synced on first identity-provider login
	admin, err := repos.User.RegisterOrSync(ctx, "ADMIN_UID_PLACEHOLDER", "eliazar.zacapa@gmail.com", domain.RoleAdmin)
	if err != nil {
		return err
	}
	if _, err := repos.User.CreditBalance(ctx, admin.UID, 9999); err != nil {
		return err
	}

	logger.Info("Demo data seeded",
		zap.Int("products", len(products)),
		zap.Int("coupons", len(coupons)),
	)
	return nil
}

var demoFAQs = []domain.FAQ{
	{
		Question: "¿Cómo recibo mi producto digital?",
		Answer:   "Una vez confirmado el pago, tu producto digital (p. ej., clave de licencia, detalles de la cuenta) se te entregará al instante. Si eres un usuario registrado, tus códigos y credenciales comprados aparecerán en tu panel de control. Si haces un pedido por WhatsApp, te lo enviaremos por ese medio.",
	},
	{
		Question: "¿Son genuinas estas licencias?",
		Answer:   "Sí, todas nuestras licencias de software y cuentas de servicio son 100% genuinas y provienen de distribuidores autorizados. Puedes usarlas con total confianza.",
	},
	{
		Question: "¿Cuál es su política de reembolso?",
		Answer:   "Debido a la naturaleza de los productos digitales, todas las ventas son finales. Sin embargo, si encuentras algún problema con tu producto, como una clave no válida, contacta a nuestro soporte y te proporcionaremos un reemplazo de inmediato.",
	},
	{
		Question: "¿Cuánto tarda la entrega?",
		Answer:   "La entrega es casi instantánea. Para usuarios registrados que pagan con saldo, el producto aparece en su panel de control inmediatamente. Para pedidos de WhatsApp, deberías recibir tu producto en 5-10 minutos después de procesar tu pedido.",
	},
}
