package parser

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/sie/ledger"
)

// Record tags outside the period value and voucher families.
const (
	TagFlag        = "#FLAGGA"
	TagFormat      = "#FORMAT"
	TagSieType     = "#SIETYP"
	TagProgram     = "#PROGRAM"
	TagGenerated   = "#GEN"
	TagNote        = "#PROSA"
	TagOrgType     = "#FTYP"
	TagCompanyCode = "#FNR"
	TagOrgNumber   = "#ORGNR"
	TagSNI         = "#BKOD"
	TagAddress     = "#ADRESS"
	TagCompany     = "#FNAMN"
	TagFiscalYear  = "#RAR"
	TagTaxYear     = "#TAXAR"
	TagCoverage    = "#OMFATTN"
	TagPlanType    = "#KPTYP"
	TagCurrency    = "#VALUTA"
	TagAccount     = "#KONTO"
	TagAccountType = "#KTYP"
	TagUnit        = "#ENHET"
	TagSRU         = "#SRU"
	TagDimension   = "#DIM"
	TagSubDim      = "#UNDERDIM"
	TagObject      = "#OBJEKT"
	TagChecksum    = "#KSUMMA"
	TagBlockOpen   = "{"
	TagBlockClose  = "}"
)

// handle dispatches one record.
func (p *Parser) handle(rec *Record) {
	if p.state == stateAwaitingFirstLine {
		if rec.Tag != TagFlag {
			p.fail(&InvalidFileError{Pos: p.pos(), Reason: fmt.Sprintf("first record is %s, expected %s", rec.Tag, TagFlag)})
			return
		}
		p.state = stateStreaming
	}

	if rec.Tag != TagChecksum {
		p.checksum.Add(rec.Tag, rec.Fields)
	}

	l := p.ledger
	switch rec.Tag {
	case TagFlag:
		l.Flag = p.int(rec, 0)
	case TagFormat:
		l.Format = rec.String(0)
	case TagSieType:
		l.SieType = p.int(rec, 0)
		if !p.opts.accepts(l.SieType) {
			p.fail(&InvalidFeatureError{Pos: p.pos(), Tag: rec.Tag, Reason: "file type is not accepted", SieType: l.SieType})
		}
	case TagProgram:
		l.Program = rec.Strings(0)
	case TagGenerated:
		l.GenDate = p.date(rec, 0)
		l.GenSign = rec.String(1)
	case TagNote:
		l.Note = rec.String(0)
	case TagOrgType:
		l.Company.OrgType = rec.String(0)
	case TagCompanyCode:
		l.Company.Code = rec.String(0)
	case TagOrgNumber:
		l.Company.OrgNumber = rec.String(0)
		l.Company.AcqNumber = rec.String(1)
		l.Company.ActNumber = rec.String(2)
	case TagSNI:
		l.Company.SNI = rec.String(0)
	case TagAddress:
		l.Company.Address = ledger.Address{
			Contact: rec.String(0),
			Street:  rec.String(1),
			Postal:  rec.String(2),
			Phone:   rec.String(3),
		}
	case TagCompany:
		l.Company.Name = rec.String(0)
	case TagFiscalYear:
		fy := l.FiscalYear(p.int(rec, 0))
		fy.Start = p.date(rec, 1)
		fy.End = p.date(rec, 2)
	case TagTaxYear:
		l.TaxYear = p.int(rec, 0)
	case TagCoverage:
		l.PeriodCoverage = p.date(rec, 0)
	case TagPlanType:
		l.AccountPlanType = rec.String(0)
	case TagCurrency:
		l.Currency = rec.String(0)

	case TagAccount:
		l.Account(p.account(rec, 0)).Name = rec.String(1)
	case TagAccountType:
		l.Account(p.account(rec, 0)).Type = rec.String(1)
	case TagUnit:
		l.Account(p.account(rec, 0)).Unit = rec.String(1)
	case TagSRU:
		a := l.Account(p.account(rec, 0))
		a.SRU = append(a.SRU, rec.String(1))

	case TagDimension:
		l.DeclareDimension(rec.String(0), rec.String(1))
	case TagSubDim:
		p.handleSubDimension(rec)
	case TagObject:
		l.DeclareObject(ledger.ObjectRef{Dimension: rec.String(0), Number: rec.String(1)}, rec.String(2))

	case ledger.TokenIB, ledger.TokenUB, ledger.TokenOIB, ledger.TokenOUB,
		ledger.TokenRES, ledger.TokenPSALDO, ledger.TokenPBUDGET:
		p.handleValue(rec)

	case ledger.TokenVER:
		p.handleVoucher(rec)
	case TagBlockOpen:
	case ledger.TokenTRANS, ledger.TokenRTRANS, ledger.TokenBTRANS:
		p.handleRow(rec)
	case TagBlockClose:
		if p.voucher == nil {
			p.report(&OutsideVoucherError{Pos: p.pos(), Tag: rec.Tag})
			return
		}
		p.closeVoucher()

	case TagChecksum:
		p.handleChecksum(rec)
	}
}

func (p *Parser) handleSubDimension(rec *Record) {
	number, parent := rec.String(0), rec.String(2)
	p.ledger.DeclareDimension(number, rec.String(1))

	err := p.ledger.SetParent(number, parent)
	if err == nil {
		return
	}

	var cycle *ledger.CycleError
	switch {
	case errors.As(err, &cycle):
		p.report(&InvalidValueError{Pos: p.pos(), Tag: rec.Tag, Kind: "parent dimension", Value: parent})
	case !p.opts.IgnoreBadUNDERDIM:
		p.report(&MissingParentError{Pos: p.pos(), Dimension: number, Parent: parent})
	}
}

// handleValue reads one of the period value records. The object list, when
// present, shifts every following field by one.
func (p *Parser) handleValue(rec *Record) {
	off := rec.ObjectOffset()
	v := &ledger.PeriodValue{Token: rec.Tag, YearNr: p.int(rec, 0)}

	var at int
	switch rec.Tag {
	case ledger.TokenIB, ledger.TokenUB:
		v.Account = p.account(rec, 1)
		at = 2 + off
	case ledger.TokenOIB, ledger.TokenOUB:
		v.Account = p.account(rec, 1)
		v.Objects = p.objects(rec, true)
		at = 2 + off
	case ledger.TokenRES:
		v.Account = p.account(rec, 1)
		v.Objects = p.objects(rec, false)
		at = 2 + off
	case ledger.TokenPSALDO, ledger.TokenPBUDGET:
		if t := p.ledger.SieType; t > 0 && t < 2 {
			p.report(&InvalidFeatureError{Pos: p.pos(), Tag: rec.Tag, Reason: "record not allowed", SieType: t})
		}
		v.Period = p.int(rec, 1)
		v.Account = p.account(rec, 2)
		v.Objects = p.objects(rec, true)
		at = 3 + off
	}
	v.Amount = p.decimal(rec, at)
	v.Quantity = p.decimal(rec, at+1)

	p.seen[rec.Tag]++
	p.callbacks.Value(rec.Tag).Fire(v)
	if p.opts.StreamValues {
		p.ledger.Account(v.Account)
		return
	}
	p.ledger.AddValue(v)
}

func (p *Parser) handleVoucher(rec *Record) {
	if p.voucher != nil {
		p.closeVoucher()
	}

	p.voucher = &ledger.Voucher{
		Series:  rec.String(0),
		Number:  rec.String(1),
		Date:    p.date(rec, 2),
		Text:    rec.String(3),
		RegDate: p.date(rec, 4),
		Sign:    rec.String(5),
		Token:   rec.Tag,
	}
	p.vpos = p.pos()
	p.state = stateInVoucher
}

func (p *Parser) handleRow(rec *Record) {
	switch {
	case rec.Tag == ledger.TokenBTRANS && p.opts.IgnoreBTRANS:
		return
	case rec.Tag == ledger.TokenRTRANS && p.opts.IgnoreRTRANS:
		return
	}
	if p.voucher == nil {
		p.report(&OutsideVoucherError{Pos: p.pos(), Tag: rec.Tag})
		return
	}

	off := rec.ObjectOffset()
	row := &ledger.Row{
		Token:    rec.Tag,
		Account:  p.account(rec, 0),
		Objects:  p.objects(rec, false),
		Amount:   p.decimal(rec, 1+off),
		Date:     p.date(rec, 2+off),
		Text:     rec.String(3 + off),
		Quantity: p.decimal(rec, 4+off),
		Sign:     rec.String(5 + off),
	}
	p.ledger.Account(row.Account)
	p.voucher.AddRow(row)
}

// closeVoucher balance checks the open voucher and hands it on.
func (p *Parser) closeVoucher() {
	v := p.voucher
	p.voucher = nil
	p.state = stateStreaming

	if !p.opts.AllowUnbalanced {
		if balance := v.Balance(p.opts.balanceIgnore()); !balance.IsZero() {
			p.report(&VoucherMismatchError{Pos: p.vpos, Voucher: v, Balance: balance.String()})
		}
	}

	p.callbacks.Voucher.Fire(v)
	if !p.opts.StreamValues {
		p.ledger.AddVoucher(v)
	}
}

// handleChecksum starts the checksum on the first bare #KSUMMA and checks the
// declared total on a #KSUMMA carrying one.
func (p *Parser) handleChecksum(rec *Record) {
	if rec.Len() == 0 {
		if !p.checksum.Started() {
			p.checksum.Start()
		}
		return
	}

	total, err := rec.Long(0)
	if err != nil {
		p.report(p.valueError(rec, err))
		return
	}
	p.ledger.Checksum = total
	if p.checksum.Started() && !p.checksum.Matches(total) {
		p.report(&ChecksumMismatchError{Pos: p.pos(), Expected: total, Actual: p.checksum.Value()})
	}
}

// objects resolves the object list of a record and ensures every referenced
// object exists in the ledger. A record that contains the empty marker {}
// has no objects.
func (p *Parser) objects(rec *Record, required bool) []ledger.ObjectRef {
	if rec.HasEmptyObjects() {
		return nil
	}

	i, ok := rec.ObjectField()
	if !ok {
		if required || rec.ObjectOffset() == 1 {
			p.report(&MissingObjectError{Pos: p.pos(), Tag: rec.Tag})
		}
		return nil
	}

	if t := p.ledger.SieType; t > 0 && t < 3 {
		p.report(&InvalidFeatureError{Pos: p.pos(), Tag: rec.Tag, Reason: "object lists not allowed", SieType: t})
	}

	refs, err := ParseObjects(rec.Fields[i])
	if err != nil {
		p.report(&InvalidValueError{Pos: p.pos(), Tag: rec.Tag, Kind: "object list", Value: rec.Fields[i]})
		return nil
	}
	for i, ref := range refs {
		o := p.ledger.EnsureObject(ref)
		refs[i] = ledger.ObjectRef{Dimension: o.Dimension, Number: o.Number}
	}
	return refs
}

func (p *Parser) account(rec *Record, i int) string {
	return p.interner.Intern(rec.String(i))
}

func (p *Parser) int(rec *Record, i int) int {
	n, err := rec.Int(i)
	if err != nil {
		p.report(p.valueError(rec, err))
	}
	return n
}

func (p *Parser) decimal(rec *Record, i int) decimal.Decimal {
	d, err := rec.Decimal(i)
	if err != nil {
		p.report(p.valueError(rec, err))
	}
	return d
}

// date returns nil for a missing or malformed date. A malformed one is
// reported first.
func (p *Parser) date(rec *Record, i int) *ledger.Date {
	d, err := rec.Date(i)
	if err != nil {
		p.report(&InvalidDateError{Pos: p.pos(), Tag: rec.Tag, Value: rec.String(i)})
		return nil
	}
	return d
}

func (p *Parser) valueError(rec *Record, err error) error {
	var ive *InvalidValueError
	if errors.As(err, &ive) {
		return &InvalidValueError{Pos: p.pos(), Tag: rec.Tag, Kind: ive.Kind, Value: ive.Value}
	}
	return err
}
