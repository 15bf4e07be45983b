package fio

// TransactionType is the closed taxonomy of movement kinds the bank
// reports. The wire format carries a free-text Czech label in column 8;
// transactionTypes maps every label the bank is known to emit onto one
// variant. The vocabulary is fixed and versioned by the bank, so matching
// is exact and an unknown label is a mapping error, never a fallback.
type TransactionType int

const (
	TypeUnknown TransactionType = iota

	TypeInBankIn  // incoming transfer within the bank
	TypeInBankOut // outgoing transfer within the bank
	TypeCashierIn
	TypeCashierOut
	TypeCashIn
	TypeCashOut
	TypePayment
	TypeIncome
	TypeCashlessPayment
	TypeCashlessIncome
	TypeCardPayment
	TypeLoanInterest
	TypePenaltyFee
	TypeDeliveryOut // courier delivery, outgoing
	TypeDeliveryIncome
	TypeInAccount // transfer inside the account
	TypeAccountedInterest
	TypeAccountedPayedInterest
	TypeInterestTax
	TypeListedInterest
	TypeFee
	TypeListedFee
	TypeOwnAccountsOut // transfer between own accounts, outgoing
	TypeOwnAccountsIn
	TypeUnknownOut // unidentified outgoing payment
	TypeUnknownIn
	TypeOwnTransferOut
	TypeOwnTransferIn
	TypeOwnCashierOut
	TypeOwnCashierIn
	TypePaymentFix // correction of a previous movement
	TypeIncomeFee
	TypeFXPayment
	TypeCardFee
	TypeDirectDebit
	TypeDirectDebitAccount
	TypeDirectDebitOut
	TypeDirectDebitIn
)

var transactionTypes = map[string]TransactionType{
	"Příjem převodem uvnitř banky":               TypeInBankIn,
	"Platba převodem uvnitř banky":               TypeInBankOut,
	"Vklad pokladnou":                            TypeCashierIn,
	"Výběr pokladnou":                            TypeCashierOut,
	"Vklad v hotovosti":                          TypeCashIn,
	"Výběr v hotovosti":                          TypeCashOut,
	"Platba":                                     TypePayment,
	"Příjem":                                     TypeIncome,
	"Bezhotovostní platba":                       TypeCashlessPayment,
	"Bezhotovostní příjem":                       TypeCashlessIncome,
	"Platba kartou":                              TypeCardPayment,
	"Úrok z úvěru":                               TypeLoanInterest,
	"Sankční poplatek":                           TypePenaltyFee,
	"Posel - předání":                            TypeDeliveryOut,
	"Posel - příjem":                             TypeDeliveryIncome,
	"Převod uvnitř konta":                        TypeInAccount,
	"Připsaný úrok":                              TypeAccountedInterest,
	"Vyplacený úrok":                             TypeAccountedPayedInterest,
	"Odvod daně z úroků":                         TypeInterestTax,
	"Evidovaný úrok":                             TypeListedInterest,
	"Poplatek":                                   TypeFee,
	"Evidovaný poplatek":                         TypeListedFee,
	"Převod mezi bankovními konty (platba)":      TypeOwnAccountsOut,
	"Převod mezi bankovními konty (příjem)":      TypeOwnAccountsIn,
	"Neidentifikovaná platba z bankovního konta": TypeUnknownOut,
	"Neidentifikovaný příjem na bankovní konto":  TypeUnknownIn,
	"Vlastní platba z bankovního konta":          TypeOwnTransferOut,
	"Vlastní příjem na bankovní konto":           TypeOwnTransferIn,
	"Vlastní platba pokladnou":                   TypeOwnCashierOut,
	"Vlastní příjem pokladnou":                   TypeOwnCashierIn,
	"Opravný pohyb":                              TypePaymentFix,
	"Přijatý poplatek":                           TypeIncomeFee,
	"Platba v jiné měně":                         TypeFXPayment,
	"Poplatek - platební karta":                  TypeCardFee,
	"Inkaso":                                     TypeDirectDebit,
	"Inkaso ve prospěch účtu":                    TypeDirectDebitAccount,
	"Inkaso z účtu":                              TypeDirectDebitOut,
	"Příjem inkasa z cizí banky":                 TypeDirectDebitIn,
}

var transactionTypeNames = map[TransactionType]string{
	TypeUnknown:                "UNKNOWN",
	TypeInBankIn:               "IN_BANK_IN",
	TypeInBankOut:              "IN_BANK_OUT",
	TypeCashierIn:              "CASHIER_IN",
	TypeCashierOut:             "CASHIER_OUT",
	TypeCashIn:                 "CASH_IN",
	TypeCashOut:                "CASH_OUT",
	TypePayment:                "PAYMENT",
	TypeIncome:                 "INCOME",
	TypeCashlessPayment:        "CASHLESS_PAYMENT",
	TypeCashlessIncome:         "CASHLESS_INCOME",
	TypeCardPayment:            "CARD_PAYMENT",
	TypeLoanInterest:           "LOAN_INTEREST",
	TypePenaltyFee:             "PENALTY_FEE",
	TypeDeliveryOut:            "DELIVERY_OUT",
	TypeDeliveryIncome:         "DELIVERY_INCOME",
	TypeInAccount:              "IN_ACCOUNT",
	TypeAccountedInterest:      "ACCOUNTED_INTEREST",
	TypeAccountedPayedInterest: "ACCOUNTED_PAYED_INTEREST",
	TypeInterestTax:            "INTEREST_TAX",
	TypeListedInterest:         "LISTED_INTEREST",
	TypeFee:                    "FEE",
	TypeListedFee:              "LISTED_FEE",
	TypeOwnAccountsOut:         "OWN_ACCOUNTS_OUT",
	TypeOwnAccountsIn:          "OWN_ACCOUNTS_IN",
	TypeUnknownOut:             "UNKNOWN_OUT",
	TypeUnknownIn:              "UNKNOWN_IN",
	TypeOwnTransferOut:         "OWN_TRANSFER_OUT",
	TypeOwnTransferIn:          "OWN_TRANSFER_IN",
	TypeOwnCashierOut:          "OWN_CASHIER_OUT",
	TypeOwnCashierIn:           "OWN_CASHIER_IN",
	TypePaymentFix:             "PAYMENT_FIX",
	TypeIncomeFee:              "INCOME_FEE",
	TypeFXPayment:              "FX_PAYMENT",
	TypeCardFee:                "CARD_FEE",
	TypeDirectDebit:            "DIRECT_DEBIT",
	TypeDirectDebitAccount:     "DIRECT_DEBIT_ACCOUNT",
	TypeDirectDebitOut:         "DIRECT_DEBIT_OUT",
	TypeDirectDebitIn:          "DIRECT_DEBIT_IN",
}

func (t TransactionType) String() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText renders the variant name, so statements serialize readably.
func (t TransactionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
