package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/ZilDuck/nft-marketplace/generated/dic"
	"github.com/ZilDuck/nft-marketplace/internal/api"
	"github.com/ZilDuck/nft-marketplace/internal/config"
	"github.com/ZilDuck/nft-marketplace/internal/messenger"
	"github.com/ZilDuck/nft-marketplace/internal/repository"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	container        *dic.Container
	itemRepo         repository.ItemRepository
	actionRepo       repository.ActionRepository
	messengerService messenger.MessageService
)

func main() {
	config.Init("cli")

	container, _ = dic.NewContainer()
	itemRepo = container.GetItemRepo()
	actionRepo = container.GetActionRepo()
	messengerService = container.GetMessenger()

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "listingPrice",
				Usage:  "Show the configured listing price",
				Action: listingPrice,
			},
			{
				Name:   "items",
				Usage:  "List unsold market items",
				Action: unsoldItems,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "size", Value: 100, Usage: "page size"},
					&cli.IntFlag{Name: "from", Value: 0, Usage: "page offset"},
				},
			},
			{
				Name:      "itemsBySeller",
				Usage:     "List market items for a seller",
				ArgsUsage: "<seller>",
				Action:    itemsBySeller,
			},
			{
				Name:      "actions",
				Usage:     "Show the audit trail for an item",
				ArgsUsage: "<itemId>",
				Action:    itemActions,
			},
			{
				Name:   "treasury",
				Usage:  "Show the treasury balances held by the market daemon",
				Action: treasury,
				Flags:  []cli.Flag{hostFlag()},
			},
			{
				Name:      "withdraw",
				Usage:     "Withdraw realized fees as the configured operator",
				ArgsUsage: "<amount>",
				Action:    withdraw,
				Flags:     []cli.Flag{hostFlag()},
			},
			{
				Name:      "queueSize",
				Usage:     "Show the pending message count for a market queue",
				ArgsUsage: "<market.listed|market.sold|market.relisted>",
				Action:    queueSize,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("CLI: Command failed")
	}
}

func listingPrice(c *cli.Context) error {
	fmt.Println(config.Get().Market.ListingPrice)
	return nil
}

func unsoldItems(c *cli.Context) error {
	items, total, err := itemRepo.GetUnsoldItems(c.Int("size"), c.Int("from"))
	if err != nil {
		return err
	}

	fmt.Printf("%d unsold items\n", total)
	return printJson(items)
}

func itemsBySeller(c *cli.Context) error {
	seller := c.Args().First()
	if seller == "" {
		return cli.Exit("seller is required", 1)
	}

	items, total, err := itemRepo.GetItemsBySeller(seller, 100, 0)
	if err != nil {
		return err
	}

	fmt.Printf("%d items for seller %s\n", total, seller)
	return printJson(items)
}

func itemActions(c *cli.Context) error {
	itemId, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil {
		return cli.Exit("itemId is required", 1)
	}

	actions, _, err := actionRepo.GetActionsByItem(itemId, 100, 0)
	if err != nil {
		return err
	}

	return printJson(actions)
}

func treasury(c *cli.Context) error {
	balances, err := getTreasury(c.String("host"))
	if err != nil {
		return err
	}

	return printJson(balances)
}

func withdraw(c *cli.Context) error {
	amount, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil {
		return cli.Exit("amount is required", 1)
	}

	if err := postWithdraw(c.String("host"), config.Get().Market.Operator, amount); err != nil {
		return err
	}

	fmt.Printf("withdrew %d\n", amount)
	return nil
}

func hostFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "host",
		Value: "http://127.0.0.1:" + config.Get().Api.Port,
		Usage: "market daemon address",
	}
}

func getTreasury(host string) (*api.TreasuryResponse, error) {
	resp, err := http.Get(host + "/treasury")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("treasury request failed: %s", resp.Status)
	}

	var balances api.TreasuryResponse
	if err := json.NewDecoder(resp.Body).Decode(&balances); err != nil {
		return nil, err
	}

	return &balances, nil
}

func postWithdraw(host, caller string, amount uint64) error {
	body, err := json.Marshal(api.WithdrawRequest{Caller: caller, Amount: amount})
	if err != nil {
		return err
	}

	resp, err := http.Post(host+"/treasury/withdraw", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		var errResp api.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return fmt.Errorf("withdraw rejected: %s", errResp.Error)
	}

	return nil
}

func queueSize(c *cli.Context) error {
	item := messenger.Item(c.Args().First())

	size, err := messengerService.GetQueueSize(item)
	if err != nil {
		return err
	}

	fmt.Println(*size)
	return nil
}

func printJson(v interface{}) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(body))
	return nil
}
