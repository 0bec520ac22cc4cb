package demodata

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Profile controls the size and seed of a generated dataset.
type Profile struct {
	Seed      int64     `validate:"required"`
	Days      int       `validate:"required,min=1,max=3650"`
	Customers int       `validate:"required,min=1,max=100"`
	Suppliers int       `validate:"required,min=1,max=100"`
	Start     time.Time // first trading day; zero means Days before today
}

// Master data pools. Counts above the pool size cycle with a numeric suffix.
var fuelStations = []struct {
	id   string
	name string
}{
	{"ST-01", "FuelFlow Main Station"},
	{"ST-02", "FuelFlow Bypass Station"},
}

var fuelProducts = []struct {
	id    string
	name  string
	price string
}{
	{"PRD-001", "Hi-Speed Diesel", "272.89"},
	{"PRD-002", "Premier Petrol", "249.10"},
	{"PRD-003", "Super Unleaded 97", "261.40"},
	{"PRD-004", "Light Diesel Oil", "255.75"},
	{"PRD-005", "4T Engine Oil 1L", "1250.00"},
}

var customerNames = []string{
	"ABC Transport", "Khan Logistics", "City Cab Company", "Metro Movers",
	"Indus Freight Lines", "Crescent Haulage", "Northern Couriers",
	"Unity Bus Service", "Valley Traders", "Star Carriage Co",
	"Allied Distribution", "Greenline Tours",
}

var supplierNames = []string{
	"Pak-Arab Refinery Supplies", "Coastal Petroleum", "Frontier Oil Traders",
	"Mehran Energy", "Qasim Fuel Depot", "Galaxy Lubricants",
	"Sunrise Petro Supply", "Delta Oilfield Services",
}

var expenseNotes = []string{
	"Fuel tanker delivery", "Lubricant stock purchase", "Generator maintenance",
	"Electricity bill", "Dispenser calibration service",
}

// Generator produces deterministic demo datasets.
type Generator struct {
	validate *validator.Validate
}

// NewGenerator creates a Generator.
func NewGenerator() *Generator {
	return &Generator{validate: validator.New()}
}

// Generate builds a dataset from the profile. The same profile always
// yields byte-identical output: amounts, dates and reference IDs are all
// drawn from the seeded source.
func (g *Generator) Generate(profile Profile) (*Dataset, error) {
	if err := g.validate.Struct(profile); err != nil {
		return nil, fmt.Errorf("invalid demo profile: %w", err)
	}

	rng := rand.New(rand.NewSource(profile.Seed))
	start := profile.Start
	if start.IsZero() {
		now := time.Now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		start = today.AddDate(0, 0, -profile.Days)
	}

	ds := &Dataset{
		Seed:  profile.Seed,
		Start: start.Format(dateLayout),
		Days:  profile.Days,
	}

	for _, station := range fuelStations {
		ds.Stations = append(ds.Stations, map[string]any{"id": station.id, "name": station.name})
	}

	prices := make([]decimal.Decimal, len(fuelProducts))
	nextPriceChange := make([]int, len(fuelProducts))
	for i, product := range fuelProducts {
		prices[i] = decimal.RequireFromString(product.price)
		nextPriceChange[i] = 5 + rng.Intn(15)
		ds.Products = append(ds.Products, map[string]any{
			"id":    product.id,
			"name":  product.name,
			"price": prices[i],
		})
	}

	customers := make([]entity, profile.Customers)
	for i := range customers {
		customers[i] = entity{id: fmt.Sprintf("CUST-%04d", i+1), name: cycleName(customerNames, i)}
		ds.Customers = append(ds.Customers, map[string]any{"id": customers[i].id, "name": customers[i].name})
	}

	suppliers := make([]entity, profile.Suppliers)
	for i := range suppliers {
		suppliers[i] = entity{id: fmt.Sprintf("SUP-%03d", i+1), name: cycleName(supplierNames, i)}
		ds.Suppliers = append(ds.Suppliers, map[string]any{"id": suppliers[i].id, "name": suppliers[i].name})
	}

	var invoiceSeq, receiptSeq, creditSeq, billSeq, voucherSeq, priceSeq int

	newID := func() string {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return uuid.Nil.String()
		}
		return id.String()
	}

	for day := 0; day < profile.Days; day++ {
		date := start.AddDate(0, 0, day)
		dateStr := date.Format(dateLayout)

		// Fuel sales on account, one to three per day
		for n := 1 + rng.Intn(3); n > 0; n-- {
			productIdx := rng.Intn(len(fuelProducts))
			product := fuelProducts[productIdx]
			customer := customers[rng.Intn(len(customers))]
			station := fuelStations[rng.Intn(len(fuelStations))]

			liters := int64(10 + rng.Intn(491))
			total := prices[productIdx].Mul(decimal.NewFromInt(liters)).Round(2)

			invoiceSeq++
			invoiceNo := fmt.Sprintf("INV-%s-%04d", date.Format("200601"), invoiceSeq)

			ds.Sales = append(ds.Sales, map[string]any{
				"id":           newID(),
				"invoiceNo":    invoiceNo,
				"customerId":   customer.id,
				"customerName": customer.name,
				"stationId":    station.id,
				"productId":    product.id,
				"date":         dateStr,
				"total":        total,
				"notes":        fmt.Sprintf("%d L %s", liters, product.name),
			})

			// Settlement: most invoices get paid, some partially, the rest age
			payDate := date.AddDate(0, 0, 1+rng.Intn(25)).Format(dateLayout)
			switch roll := rng.Float64(); {
			case roll < 0.70:
				receiptSeq++
				ds.Payments = append(ds.Payments, map[string]any{
					"id":           newID(),
					"receiptNo":    fmt.Sprintf("RCT-%s-%04d", date.Format("200601"), receiptSeq),
					"customerId":   customer.id,
					"customerName": customer.name,
					"date":         payDate,
					"amount":       total,
					"notes":        "Settlement of " + invoiceNo,
				})
			case roll < 0.85:
				half := total.Div(decimal.NewFromInt(2)).Round(2)
				receiptSeq++
				ds.Payments = append(ds.Payments, map[string]any{
					"id":           newID(),
					"receiptNo":    fmt.Sprintf("RCT-%s-%04d", date.Format("200601"), receiptSeq),
					"customerId":   customer.id,
					"customerName": customer.name,
					"date":         payDate,
					"amount":       half,
					"notes":        "Part payment of " + invoiceNo,
				})
				ds.OpenInvoices = append(ds.OpenInvoices, map[string]any{
					"customerId":   customer.id,
					"customerName": customer.name,
					"invoiceNo":    invoiceNo,
					"invoiceDate":  dateStr,
					"total":        total.Sub(half),
				})
			default:
				ds.OpenInvoices = append(ds.OpenInvoices, map[string]any{
					"customerId":   customer.id,
					"customerName": customer.name,
					"invoiceNo":    invoiceNo,
					"invoiceDate":  dateStr,
					"total":        total,
				})
			}

			// Occasional credit note for returned or disputed fuel
			if rng.Float64() < 0.05 {
				creditSeq++
				creditAmount := total.Mul(decimal.New(int64(10+rng.Intn(21)), -2)).Round(2)
				ds.Credits = append(ds.Credits, map[string]any{
					"id":           newID(),
					"referenceId":  fmt.Sprintf("CN-%s-%03d", date.Format("200601"), creditSeq),
					"customerId":   customer.id,
					"customerName": customer.name,
					"date":         date.AddDate(0, 0, rng.Intn(10)).Format(dateLayout),
					"amount":       creditAmount,
					"notes":        "Credit against " + invoiceNo,
				})
			}
		}

		// Supplier bills arrive a few times a week
		if rng.Float64() < 0.30 {
			supplier := suppliers[rng.Intn(len(suppliers))]
			station := fuelStations[rng.Intn(len(fuelStations))]
			amount := decimal.NewFromInt(int64(25000 + rng.Intn(375001))).
				Add(decimal.New(int64(rng.Intn(100)), -2))

			billSeq++
			billNo := fmt.Sprintf("BILL-%s-%03d", date.Format("200601"), billSeq)

			ds.Expenses = append(ds.Expenses, map[string]any{
				"id":           newID(),
				"invoiceNo":    billNo,
				"supplierId":   supplier.id,
				"supplierName": supplier.name,
				"stationId":    station.id,
				"date":         dateStr,
				"amount":       amount,
				"notes":        expenseNotes[rng.Intn(len(expenseNotes))],
			})

			if rng.Float64() < 0.75 {
				voucherSeq++
				ds.SupplierPayments = append(ds.SupplierPayments, map[string]any{
					"id":           newID(),
					"receiptNo":    fmt.Sprintf("PV-%s-%03d", date.Format("200601"), voucherSeq),
					"supplierId":   supplier.id,
					"supplierName": supplier.name,
					"date":         date.AddDate(0, 0, 5+rng.Intn(26)).Format(dateLayout),
					"amount":       amount,
					"notes":        "Payment of " + billNo,
				})
			} else {
				ds.OpenBills = append(ds.OpenBills, map[string]any{
					"supplierId":   supplier.id,
					"supplierName": supplier.name,
					"invoiceNo":    billNo,
					"invoiceDate":  dateStr,
					"total":        amount,
				})
			}
		}

		// Notified pump price revisions
		for i, product := range fuelProducts {
			if day != nextPriceChange[i] {
				continue
			}
			nextPriceChange[i] += 8 + rng.Intn(12)

			delta := decimal.New(int64(25+rng.Intn(576)), -2)
			if rng.Float64() >= 0.55 {
				delta = delta.Neg()
			}
			if prices[i].Add(delta).LessThan(decimal.NewFromInt(100)) {
				delta = delta.Abs()
			}
			prices[i] = prices[i].Add(delta)

			priceSeq++
			ds.PriceChanges = append(ds.PriceChanges, map[string]any{
				"id":          newID(),
				"referenceId": fmt.Sprintf("PC-%s-%03d", date.Format("200601"), priceSeq),
				"productId":   product.id,
				"productName": product.name,
				"date":        dateStr,
				"amount":      delta,
				"notes":       fmt.Sprintf("Notified pump price %s", prices[i].StringFixed(2)),
			})
		}
	}

	return ds, nil
}

const dateLayout = "2006-01-02"

type entity struct {
	id   string
	name string
}

func cycleName(pool []string, i int) string {
	name := pool[i%len(pool)]
	if i >= len(pool) {
		name = fmt.Sprintf("%s %d", name, i/len(pool)+1)
	}
	return name
}
