package marketplace

// Treasury holds the listing fees. A fee is escrowed when an item is listed
// and only realized (made withdrawable by the operator) when the sale
// completes, so an unsold listing never enriches the operator. The ledger
// serializes all access; Treasury carries no lock of its own.
type Treasury struct {
	operator string
	escrowed uint64
	realized uint64
}

func NewTreasury(operator string) *Treasury {
	return &Treasury{operator: operator}
}

func (t *Treasury) Deposit(amount uint64) {
	t.escrowed += amount
}

func (t *Treasury) Realize(amount uint64) error {
	if amount > t.escrowed {
		return ErrInsufficientBalance
	}

	t.escrowed -= amount
	t.realized += amount

	return nil
}

func (t *Treasury) Withdraw(caller string, amount uint64) error {
	if caller != t.operator {
		return ErrNotOperator
	}

	if amount > t.realized {
		return ErrInsufficientBalance
	}

	t.realized -= amount

	return nil
}

func (t *Treasury) Operator() string {
	return t.operator
}

func (t *Treasury) Escrowed() uint64 {
	return t.escrowed
}

func (t *Treasury) Realized() uint64 {
	return t.realized
}
