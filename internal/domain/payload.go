package domain

// ChangePayload is a tagged union keyed by the record's ActionType. Exactly one
// variant is set. Before holds the pre-change snapshot for the lifetime of the
// record so a rollback is always possible while the status allows it.
type ChangePayload struct {
	SEO             *SEOChange             `json:"seo,omitempty"`
	Product         *ProductChange         `json:"product,omitempty"`
	CartRecovery    *CartRecoveryChange    `json:"cart_recovery,omitempty"`
	ABTest          *ABTestChange          `json:"ab_test,omitempty"`
	Pricing         *PricingChange         `json:"pricing,omitempty"`
	Content         *ContentChange         `json:"content,omitempty"`
	Discoverability *DiscoverabilityChange `json:"discoverability,omitempty"`
}

type SEOSnapshot struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

type SEOChange struct {
	Before SEOSnapshot `json:"before"`
	After  SEOSnapshot `json:"after"`
}

type ProductSnapshot struct {
	Title     string   `json:"title"`
	BodyHTML  string   `json:"body_html"`
	ImagesAlt []string `json:"images_alt,omitempty"`
}

type ProductChange struct {
	Before ProductSnapshot `json:"before"`
	After  ProductSnapshot `json:"after"`
}

type CartRecoverySnapshot struct {
	Subject         string  `json:"subject"`
	Body            string  `json:"body"`
	DiscountCode    string  `json:"discount_code,omitempty"`
	DiscountPercent float64 `json:"discount_percent,omitempty"`
}

type CartRecoveryChange struct {
	Before CartRecoverySnapshot `json:"before"`
	After  CartRecoverySnapshot `json:"after"`
}

type ABTestSnapshot struct {
	VariantName string  `json:"variant_name"`
	Title       string  `json:"title"`
	Price       float64 `json:"price,omitempty"`
	Active      bool    `json:"active"`
}

type ABTestChange struct {
	Before ABTestSnapshot `json:"before"`
	After  ABTestSnapshot `json:"after"`
}

type PricingSnapshot struct {
	Price          float64 `json:"price"`
	CompareAtPrice float64 `json:"compare_at_price,omitempty"`
	Currency       string  `json:"currency"`
}

type PricingChange struct {
	Before PricingSnapshot `json:"before"`
	After  PricingSnapshot `json:"after"`
}

type ContentSnapshot struct {
	BodyHTML string `json:"body_html"`
	Excerpt  string `json:"excerpt,omitempty"`
}

type ContentChange struct {
	Before ContentSnapshot `json:"before"`
	After  ContentSnapshot `json:"after"`
}

type DiscoverabilitySnapshot struct {
	Collections    []string `json:"collections,omitempty"`
	SearchKeywords []string `json:"search_keywords,omitempty"`
}

type DiscoverabilityChange struct {
	Before DiscoverabilitySnapshot `json:"before"`
	After  DiscoverabilitySnapshot `json:"after"`
}

// variantFor maps an action type to the payload variant that must be set.
func (p ChangePayload) variantFor(action ActionType) (any, bool) {
	switch action {
	case ActionOptimizeSEO:
		return p.SEO, p.SEO != nil
	case ActionFixProduct:
		return p.Product, p.Product != nil
	case ActionSendCartRecovery:
		return p.CartRecovery, p.CartRecovery != nil
	case ActionRunABTest:
		return p.ABTest, p.ABTest != nil
	case ActionAdjustPrice:
		return p.Pricing, p.Pricing != nil
	case ActionContentRefresh:
		return p.Content, p.Content != nil
	case ActionDiscoverability:
		return p.Discoverability, p.Discoverability != nil
	default:
		return nil, false
	}
}

// Validate checks that exactly the variant matching the action type is populated.
func (p ChangePayload) Validate(action ActionType) error {
	if _, ok := p.variantFor(action); !ok {
		return ErrInvalidPayload
	}
	set := 0
	for _, v := range []bool{
		p.SEO != nil, p.Product != nil, p.CartRecovery != nil, p.ABTest != nil,
		p.Pricing != nil, p.Content != nil, p.Discoverability != nil,
	} {
		if v {
			set++
		}
	}
	if set != 1 {
		return ErrInvalidPayload
	}
	return nil
}

// BeforeContent returns the pre-change snapshot to reapply on rollback.
func (p ChangePayload) BeforeContent(action ActionType) any {
	switch action {
	case ActionOptimizeSEO:
		if p.SEO != nil {
			return p.SEO.Before
		}
	case ActionFixProduct:
		if p.Product != nil {
			return p.Product.Before
		}
	case ActionSendCartRecovery:
		if p.CartRecovery != nil {
			return p.CartRecovery.Before
		}
	case ActionRunABTest:
		if p.ABTest != nil {
			return p.ABTest.Before
		}
	case ActionAdjustPrice:
		if p.Pricing != nil {
			return p.Pricing.Before
		}
	case ActionContentRefresh:
		if p.Content != nil {
			return p.Content.Before
		}
	case ActionDiscoverability:
		if p.Discoverability != nil {
			return p.Discoverability.Before
		}
	}
	return nil
}

// AfterContent returns the proposed snapshot to apply on execution.
func (p ChangePayload) AfterContent(action ActionType) any {
	switch action {
	case ActionOptimizeSEO:
		if p.SEO != nil {
			return p.SEO.After
		}
	case ActionFixProduct:
		if p.Product != nil {
			return p.Product.After
		}
	case ActionSendCartRecovery:
		if p.CartRecovery != nil {
			return p.CartRecovery.After
		}
	case ActionRunABTest:
		if p.ABTest != nil {
			return p.ABTest.After
		}
	case ActionAdjustPrice:
		if p.Pricing != nil {
			return p.Pricing.After
		}
	case ActionContentRefresh:
		if p.Content != nil {
			return p.Content.After
		}
	case ActionDiscoverability:
		if p.Discoverability != nil {
			return p.Discoverability.After
		}
	}
	return nil
}
