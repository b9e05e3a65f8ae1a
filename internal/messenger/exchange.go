package messenger

import "github.com/streadway/amqp"

type exchange struct {
	Name        string
	Type        string
	Durable     bool
	AutoDeleted bool
	Internal    bool
	NoWait      bool
	Arguments   amqp.Table
}

var exchanges = map[string]exchange{
	"market.listed": {
		Name:    "market.listed",
		Type:    "topic",
		Durable: true,
		NoWait:  true,
	},
	"market.sold": {
		Name:    "market.sold",
		Type:    "topic",
		Durable: true,
		NoWait:  true,
	},
	"market.relisted": {
		Name:    "market.relisted",
		Type:    "topic",
		Durable: true,
		NoWait:  true,
	},
}
