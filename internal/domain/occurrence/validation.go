package occurrence

import "github.com/transitops/backend/internal/domain/shared"

// ruleset validates the per-type fields of a report. The core rules run for
// every type; the selector picks the extra ruleset by discriminator.
type ruleset func(r *Report, c *shared.Collector)

// rulesets is the validation selector table. Every known type has an entry;
// an unknown discriminator is itself a validation failure.
var rulesets = map[Type]ruleset{
	TypeDelay:           validateDelay,
	TypeCancellation:    validateCancellation,
	TypeDeviation:       validateDeviation,
	TypeFailure:         validateFailure,
	TypeNonOccurrence:   validateNonOccurrence,
	TypeDeviationByLine: validateDeviationByLine,
}

// Validate runs the core rules plus the type's ruleset, reporting every
// failing field in one pass.
func (r *Report) Validate() error {
	var c shared.Collector

	rs, known := rulesets[r.Type]
	c.Require(known, "occurrence_type", "invalid", "occurrence_type is invalid")

	r.validateCore(&c)
	if known {
		rs(r, &c)
	}
	return c.Err()
}

func (r *Report) validateCore(c *shared.Collector) {
	c.RequireNotBlank(r.ReportNumber, "report_number")
	c.RequireNotBlank(r.Car, "car")
	c.RequireNotBlank(r.BusLine, "line_bus")
	c.RequireNotBlank(r.DriverRegistration, "driver_registration")
	c.Require(r.Motive > 0, "motive", "required", "motive is required")
	c.Require(r.SectorAffected > 0, "sector_affected", "required", "sector_affected is required")
	c.Require(r.OccurrenceCode > 0, "occurrence", "required", "occurrence is required")
	c.RequireMinLen(r.Location, "location", 10)
	c.RequireMinLen(r.Detail, "occurrence_detail", 5)
	c.Require(!r.DateOccurrence.IsZero(), "date_occurrence", "required", "date_occurrence is required")

	// Deviations happen off the metered route, so the odometer reading is
	// only mandatory for the other types.
	if r.Type != TypeDeviation {
		c.Require(r.VehicleKilometer.IsPositive(), "vehicle_kilometer", "required",
			"vehicle_kilometer is required")
	}
}

func validateDelay(r *Report, c *shared.Collector) {
	c.Require(r.DelayMinutes > 0, "delay_minutes", "required", "delay_minutes is required")
}

func validateCancellation(r *Report, c *shared.Collector) {
	c.Require(r.TripsCancelled > 0, "trips_cancelled", "required", "trips_cancelled is required")
}

func validateDeviation(r *Report, c *shared.Collector) {
	c.RequireNotBlank(r.DeviationRealized, "deviation_realized")
}

func validateFailure(r *Report, c *shared.Collector) {
	c.RequireNotBlank(r.SubstituteCar, "substitute_car")
}

func validateNonOccurrence(_ *Report, _ *shared.Collector) {
	// Non-occurrence reports only carry the core fields.
}

func validateDeviationByLine(r *Report, c *shared.Collector) {
	c.RequireNotBlank(r.DeviationRealized, "deviation_realized")
}
