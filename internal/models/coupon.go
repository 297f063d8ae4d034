package models

type Coupon struct {
	Code           string `json:"code"`
	Percent        int    `json:"percent"`
	MinAmountPaise int64  `json:"min_amount_paise"`
	Active         bool   `json:"active"`
}
