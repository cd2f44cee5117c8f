package tx

// Type represents a transaction type code
type Type uint16

// All transaction type codes
const (
	TypeInvalid Type = 0xFFFF // Invalid/unknown type

	TypeInitialize      Type = 0
	TypeSetParameters   Type = 1
	TypeProposeAdmin    Type = 2
	TypeAcceptAdmin     Type = 3
	TypePoolCreate      Type = 4
	TypeAddLiquidity    Type = 5
	TypeRemoveLiquidity Type = 6
	TypeBuy             Type = 7
	TypeSell            Type = 8
)

// String returns the string name of the transaction type
func (t Type) String() string {
	switch t {
	case TypeInitialize:
		return "Initialize"
	case TypeSetParameters:
		return "SetParameters"
	case TypeProposeAdmin:
		return "ProposeAdmin"
	case TypeAcceptAdmin:
		return "AcceptAdmin"
	case TypePoolCreate:
		return "PoolCreate"
	case TypeAddLiquidity:
		return "AddLiquidity"
	case TypeRemoveLiquidity:
		return "RemoveLiquidity"
	case TypeBuy:
		return "Buy"
	case TypeSell:
		return "Sell"
	default:
		return "Invalid"
	}
}

// TypeFromName returns the transaction type for a name
func TypeFromName(name string) (Type, bool) {
	switch name {
	case "Initialize":
		return TypeInitialize, true
	case "SetParameters":
		return TypeSetParameters, true
	case "ProposeAdmin":
		return TypeProposeAdmin, true
	case "AcceptAdmin":
		return TypeAcceptAdmin, true
	case "PoolCreate":
		return TypePoolCreate, true
	case "AddLiquidity":
		return TypeAddLiquidity, true
	case "RemoveLiquidity":
		return TypeRemoveLiquidity, true
	case "Buy":
		return TypeBuy, true
	case "Sell":
		return TypeSell, true
	default:
		return TypeInvalid, false
	}
}
