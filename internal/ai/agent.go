package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"go-pos-inventory/internal/ledger"
	"go-pos-inventory/internal/models"
)

const (
	defaultModel  = "gemini-2.0-flash-001"
	maxToolRounds = 5
)

// Inventory is what the assistant may read and change.
type Inventory interface {
	Products() []models.Product
	AddProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdatePrice(ctx context.Context, barcode string, price decimal.Decimal) (models.Product, error)
	SalesSummary(from, to string) (ledger.SalesSummary, error)
}

// Agent answers inventory questions through Gemini function calling.
type Agent struct {
	inventory Inventory
	apiKey    string
	model     string
	now       func() time.Time
}

func NewAgent(inventory Inventory, apiKey string) *Agent {
	return &Agent{inventory: inventory, apiKey: apiKey, model: defaultModel, now: time.Now}
}

// Enabled reports whether an API key was configured.
func (a *Agent) Enabled() bool {
	return a != nil && a.apiKey != ""
}

// Ask runs one conversation turn, executing tool calls until the model
// answers with text.
func (a *Agent) Ask(ctx context.Context, userMessage string) (string, error) {
	if !a.Enabled() {
		return "", errors.New("assistant is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(a.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(a.systemPrompt())}}
	model.Tools = tools()

	session := model.StartChat()
	resp, err := session.SendMessage(ctx, genai.Text(userMessage))
	if err != nil {
		return "", err
	}

	for round := 0; round < maxToolRounds; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			return responseText(resp), nil
		}

		replies := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			replies = append(replies, genai.FunctionResponse{
				Name:     call.Name,
				Response: a.executeTool(ctx, call),
			})
		}
		resp, err = session.SendMessage(ctx, replies...)
		if err != nil {
			return "", err
		}
	}
	return responseText(resp), nil
}

func (a *Agent) systemPrompt() string {
	return fmt.Sprintf(`Today is %s. You are the assistant of a small shop's point of sale.

RULES:
1. Products are identified by barcode. If the user names a product, call 'check_inventory' first to find its barcode, then act on it. Never ask the user for a barcode you can look up.
2. For price, stock, units or category questions call 'check_inventory' and answer from its result.
3. For sales or revenue questions call 'get_sales_report'.
4. Categories are DAIRY, GROCERIES, BEVERAGES, FRESH, BAKERY and OTHER.`, a.now().Format("2006-01-02"))
}

func tools() []*genai.Tool {
	return []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        "check_inventory",
				Description: "Get the full product list with barcode, name, price, units, stock and category.",
			},
			{
				Name:        "update_product_price",
				Description: "Change the price of a product identified by barcode. Stock is not changed.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"barcode":   {Type: genai.TypeString, Description: "Barcode of the product"},
						"new_price": {Type: genai.TypeNumber, Description: "New price"},
					},
					Required: []string{"barcode", "new_price"},
				},
			},
			{
				Name:        "create_product",
				Description: "Add a product, or add stock to an existing barcode.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"barcode":  {Type: genai.TypeString, Description: "Barcode"},
						"name":     {Type: genai.TypeString, Description: "Name of the product"},
						"price":    {Type: genai.TypeNumber, Description: "Price"},
						"units":    {Type: genai.TypeInteger, Description: "Units per pack, at least 1"},
						"stock":    {Type: genai.TypeInteger, Description: "Stock to add"},
						"category": {Type: genai.TypeString, Description: "Category"},
					},
					Required: []string{"barcode", "name", "price", "stock"},
				},
			},
			{
				Name:        "get_sales_report",
				Description: "Get total invoice revenue and count for a date range.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
						"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
					},
					Required: []string{"start_date", "end_date"},
				},
			},
		},
	}}
}

// executeTool runs one function call and returns the payload sent back to
// the model. Failures are reported in the payload, not as Go errors.
func (a *Agent) executeTool(ctx context.Context, call genai.FunctionCall) map[string]any {
	switch call.Name {
	case "check_inventory":
		inventory := make([]map[string]any, 0)
		for _, p := range a.inventory.Products() {
			inventory = append(inventory, map[string]any{
				"barcode":  p.Barcode,
				"name":     p.Name,
				"price":    p.Price.InexactFloat64(),
				"units":    p.Units,
				"stock":    p.Stock,
				"category": string(p.Category),
			})
		}
		return map[string]any{"inventory": inventory}

	case "update_product_price":
		barcode, err := stringArg(call.Args, "barcode")
		if err != nil {
			return failure(err)
		}
		price, err := numberArg(call.Args, "new_price")
		if err != nil {
			return failure(err)
		}
		p, err := a.inventory.UpdatePrice(ctx, barcode, decimal.NewFromFloat(price))
		if err != nil {
			return failure(err)
		}
		return map[string]any{"status": "updated", "barcode": p.Barcode, "new_price": p.Price.InexactFloat64()}

	case "create_product":
		p, err := productArgs(call.Args)
		if err != nil {
			return failure(err)
		}
		saved, err := a.inventory.AddProduct(ctx, p)
		if err != nil {
			return failure(err)
		}
		return map[string]any{"status": "saved", "barcode": saved.Barcode, "stock": saved.Stock}

	case "get_sales_report":
		from, err := stringArg(call.Args, "start_date")
		if err != nil {
			return failure(err)
		}
		to, err := stringArg(call.Args, "end_date")
		if err != nil {
			return failure(err)
		}
		summary, err := a.inventory.SalesSummary(from, to)
		if err != nil {
			return failure(err)
		}
		return map[string]any{
			"revenue":     summary.TotalRevenue.InexactFloat64(),
			"sales_count": summary.TotalCount,
		}

	default:
		return failure(fmt.Errorf("unknown tool %q", call.Name))
	}
}

func productArgs(args map[string]any) (models.Product, error) {
	barcode, err := stringArg(args, "barcode")
	if err != nil {
		return models.Product{}, err
	}
	name, err := stringArg(args, "name")
	if err != nil {
		return models.Product{}, err
	}
	price, err := numberArg(args, "price")
	if err != nil {
		return models.Product{}, err
	}
	stock, err := numberArg(args, "stock")
	if err != nil {
		return models.Product{}, err
	}
	units := 1.0
	if _, ok := args["units"]; ok {
		if units, err = numberArg(args, "units"); err != nil {
			return models.Product{}, err
		}
	}
	category, _ := args["category"].(string)

	return models.Product{
		Barcode:  barcode,
		Name:     name,
		Price:    decimal.NewFromFloat(price),
		Units:    int(units),
		Stock:    int(stock),
		Category: models.ParseCategory(category),
	}, nil
}

func stringArg(args map[string]any, key string) (string, error) {
	value, ok := args[key].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("argument %s is required", key)
	}
	return strings.TrimSpace(value), nil
}

func numberArg(args map[string]any, key string) (float64, error) {
	switch v := args[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("argument %s must be a number", key)
	}
}

func failure(err error) map[string]any {
	return map[string]any{"status": "error", "error": err.Error()}
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	var calls []genai.FunctionCall
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if call, ok := part.(genai.FunctionCall); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "I completed the action."
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
