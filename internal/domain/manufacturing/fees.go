package manufacturing

import "fmt"

// Fees holds the trade fee fractions applied during a cost evaluation.
// Each rate is a fraction in [0, 1).
type Fees struct {
	brokerRate   float64
	stationRate  float64
	salesTaxRate float64
}

// NewFees creates a validated fee set
func NewFees(brokerRate, stationRate, salesTaxRate float64) (Fees, error) {
	if brokerRate < 0 || brokerRate >= 1 {
		return Fees{}, fmt.Errorf("broker fee rate must be in [0,1), got %f", brokerRate)
	}
	if stationRate < 0 || stationRate >= 1 {
		return Fees{}, fmt.Errorf("station fee rate must be in [0,1), got %f", stationRate)
	}
	if salesTaxRate < 0 || salesTaxRate >= 1 {
		return Fees{}, fmt.Errorf("sales tax rate must be in [0,1), got %f", salesTaxRate)
	}
	return Fees{
		brokerRate:   brokerRate,
		stationRate:  stationRate,
		salesTaxRate: salesTaxRate,
	}, nil
}

// BrokerRate returns the broker fee fraction
func (f Fees) BrokerRate() float64 {
	return f.brokerRate
}

// StationRate returns the station fee fraction
func (f Fees) StationRate() float64 {
	return f.stationRate
}

// SalesTaxRate returns the sales tax fraction
func (f Fees) SalesTaxRate() float64 {
	return f.salesTaxRate
}

// Efficiencies holds the blueprint research percentages, each in [0, 100)
type Efficiencies struct {
	materialPct float64
	timePct     float64
}

// NewEfficiencies creates a validated efficiency pair
func NewEfficiencies(materialPct, timePct float64) (Efficiencies, error) {
	if materialPct < 0 || materialPct >= 100 {
		return Efficiencies{}, fmt.Errorf("material efficiency must be in [0,100), got %f", materialPct)
	}
	if timePct < 0 || timePct >= 100 {
		return Efficiencies{}, fmt.Errorf("time efficiency must be in [0,100), got %f", timePct)
	}
	return Efficiencies{materialPct: materialPct, timePct: timePct}, nil
}

// MaterialPct returns the material efficiency percentage
func (e Efficiencies) MaterialPct() float64 {
	return e.materialPct
}

// TimePct returns the time efficiency percentage
func (e Efficiencies) TimePct() float64 {
	return e.timePct
}
