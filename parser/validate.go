package parser

import "github.com/robinvdvleuten/sie/ledger"

// finish closes a voucher left open at the end of input and runs the checks
// that need the whole file.
func (p *Parser) finish() {
	if p.voucher != nil {
		p.closeVoucher()
	}
	p.state = stateDone

	for _, err := range p.validate() {
		p.report(err)
	}
}

// validate returns the missing records of a complete file.
func (p *Parser) validate() []error {
	var (
		l    = p.ledger
		pos  = p.pos()
		errs []error
	)

	if l.GenDate == nil {
		errs = append(errs, &MissingFieldError{Pos: pos, Field: TagGenerated})
	}

	if !p.opts.IgnoreMissingOMFATTN && l.PeriodCoverage == nil && (l.SieType == 2 || l.SieType == 3) {
		if p.seen[ledger.TokenRES] > 0 || p.seen[ledger.TokenUB] > 0 || p.seen[ledger.TokenOUB] > 0 {
			errs = append(errs, &MissingFieldError{Pos: pos, Field: TagCoverage})
		}
	}

	if !p.opts.IgnoreKSUMMA && p.checksum.Started() && l.Checksum == 0 {
		errs = append(errs, &MissingFieldError{Pos: pos, Field: TagChecksum})
	}

	// Only dimensions are checked. Objects created by a reference inside a
	// declared dimension are accepted without a matching #OBJEKT.
	if !p.opts.IgnoreMissingDIM {
		for _, dim := range l.TempDimensions() {
			errs = append(errs, &MissingFieldError{Pos: pos, Field: TagDimension + " " + dim})
		}
	}

	return errs
}
