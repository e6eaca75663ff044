package reminder

import "errors"

type OrderBy struct {
	v string
}

var (
	OrderByNotSet       OrderBy = OrderBy{}
	OrderByIDAsc        OrderBy = OrderBy{v: "id_asc"}
	OrderByIDDesc       OrderBy = OrderBy{v: "id_desc"}
	OrderByAnchorAtAsc  OrderBy = OrderBy{v: "anchor_at_asc"}
	OrderByAnchorAtDesc OrderBy = OrderBy{v: "anchor_at_desc"}
)

var ErrParseOrderBy = errors.New("invalid order")

func ParseOrderBy(value string) (OrderBy, error) {
	switch value {
	case "id_asc":
		return OrderByIDAsc, nil
	case "id_desc":
		return OrderByIDDesc, nil
	case "anchor_at_asc":
		return OrderByAnchorAtAsc, nil
	case "anchor_at_desc":
		return OrderByAnchorAtDesc, nil
	default:
		return OrderByNotSet, ErrParseOrderBy
	}
}

func (o OrderBy) String() string {
	return o.v
}
