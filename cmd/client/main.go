package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/calebwray/gemtable/pkg/client/network"
	"github.com/calebwray/gemtable/pkg/economy"
	gametypes "github.com/calebwray/gemtable/pkg/game/types"
	"github.com/calebwray/gemtable/pkg/log"
	"github.com/calebwray/gemtable/pkg/messages"
	"github.com/calebwray/gemtable/pkg/queue"
	"github.com/calebwray/gemtable/pkg/state"
	"github.com/joho/godotenv"
)

const defaultServerURL = "ws://localhost:8000/ws"

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func main() {
	// .env is optional; flags beat env, env beats defaults.
	_ = godotenv.Load()

	serverURL := flag.String("server-url", envOrDefault("GEMTABLE_SERVER_URL", defaultServerURL), "Room server websocket URL")
	roomName := flag.String("room", envOrDefault("GEMTABLE_ROOM", ""), "Room name")
	username := flag.String("username", envOrDefault("GEMTABLE_USERNAME", ""), "Your display name")
	create := flag.Bool("create", false, "Create the room instead of joining it")
	reconnect := flag.Int("reconnect", 0, "Reconnect attempts after a dropped connection (0 disables)")
	logLevel := flag.String("log-level", envOrDefault("GEMTABLE_LOG_LEVEL", "info"), "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}
	log.SetDefaultLogger(log.NewConsole(os.Stderr, parsedLogLevel))

	if *roomName == "" || *username == "" {
		fmt.Fprintln(os.Stderr, "both -room and -username are required")
		flag.Usage()
		os.Exit(1)
	}

	stateManager := state.NewInMemoryStateManager()
	settings := state.NewBoardSettings()
	notificationQueue := queue.NewInMemoryQueue(queue.DefaultBufferSize)

	manager, err := network.NewNetworkManager(network.NewNetworkManagerOptions{
		ServerURL:         *serverURL,
		RoomName:          *roomName,
		Username:          *username,
		StateManager:      stateManager,
		NotificationQueue: notificationQueue,
		ReconnectAttempts: *reconnect,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create network manager: %v", err))
	}

	if err := manager.Start(); err != nil {
		panic(fmt.Sprintf("Failed to start network manager: %v", err))
	}
	defer manager.Stop()

	if *create {
		if err := manager.CreateRoom(); err != nil {
			log.Error("Failed to create room: %v", err)
		}
	} else {
		if err := manager.JoinRoom(); err != nil {
			log.Error("Failed to join room: %v", err)
		}
	}

	repl(manager, stateManager, settings, notificationQueue)
}

func repl(manager *network.NetworkManager, stateManager state.StateManager, settings *state.BoardSettings, notifications queue.Queue) {
	fmt.Println(`Type "help" for commands.`)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		drainNotifications(notifications)

		select {
		case err := <-manager.ErrChan():
			fmt.Printf("connection lost: %v\n", err)
			return
		default:
		}

		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if err := runCommand(fields, manager, stateManager, settings); err != nil {
			if err == errQuit {
				return
			}
			fmt.Printf("error: %v\n", err)
		}
	}
}

var errQuit = fmt.Errorf("quit")

func runCommand(fields []string, manager *network.NetworkManager, stateManager state.StateManager, settings *state.BoardSettings) error {
	switch fields[0] {
	case "help":
		printHelp()
	case "quit", "exit":
		return errQuit
	case "begin":
		return manager.BeginGame()
	case "view":
		return manager.ViewRoom()
	case "catalog":
		return manager.GetCardsAndCollections()
	case "status":
		fmt.Printf("connection: %s\n", manager.Status())
		return manager.DebugStatus()
	case "board":
		printBoard(stateManager, settings)
	case "players":
		printPlayers(stateManager)
	case "wallet":
		printWallet(stateManager)
	case "discounted":
		if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
			return fmt.Errorf("usage: discounted on|off")
		}
		settings.SetViewDiscountedPrices(fields[1] == "on")
	case "take":
		if len(fields) != 2 {
			return fmt.Errorf("usage: take <color>")
		}
		return manager.DoAction(messages.ActionTakeSame, messages.TakeSameArgs{Color: gametypes.Color(fields[1])})
	case "take3":
		if len(fields) != 4 {
			return fmt.Errorf("usage: take3 <color> <color> <color>")
		}
		colors := []gametypes.Color{gametypes.Color(fields[1]), gametypes.Color(fields[2]), gametypes.Color(fields[3])}
		return manager.DoAction(messages.ActionTakeDifferent, messages.TakeDifferentArgs{Colors: colors})
	case "reserve":
		if len(fields) == 3 && fields[1] == "deck" {
			return manager.DoAction(messages.ActionReserve, messages.ReserveArgs{Tier: fields[2]})
		}
		if len(fields) != 2 {
			return fmt.Errorf("usage: reserve <card-id> | reserve deck <tier>")
		}
		cardID, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("bad card id %q", fields[1])
		}
		card, ok := stateManager.Read().Cards[cardID]
		tier := "1"
		if ok {
			tier = card.Tier
		}
		return manager.DoAction(messages.ActionReserve, messages.ReserveArgs{Tier: tier, CardID: &cardID})
	case "buy":
		if len(fields) < 2 {
			return fmt.Errorf("usage: buy <card-id> [gold-color ...]")
		}
		cardID, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("bad card id %q", fields[1])
		}
		var goldUsage []gametypes.Color
		for _, f := range fields[2:] {
			goldUsage = append(goldUsage, gametypes.Color(f))
		}
		return manager.DoAction(messages.ActionPurchase, messages.PurchaseArgs{CardID: cardID, GoldUsage: goldUsage})
	default:
		return fmt.Errorf("unknown command %q, try help", fields[0])
	}
	return nil
}

func printHelp() {
	fmt.Print(`commands:
  board                      show decks, nobles and bank
  players                    show everyone's score and tokens
  wallet                     show your tokens and discounts
  take <color>               take two tokens of one color
  take3 <c> <c> <c>          take three different tokens
  reserve <card-id>          reserve a card (earns a gold token)
  reserve deck <tier>        reserve the hidden top card of a tier
  buy <card-id> [colors...]  buy a card, spending one gold per listed color
  discounted on|off          show card prices after your discounts
  begin | view | catalog | status | quit
`)
}

func drainNotifications(notifications queue.Queue) {
	items, err := notifications.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read notifications: %v", err)
		return
	}
	for _, item := range items {
		n, ok := item.(*network.Notification)
		if !ok {
			continue
		}
		if n.Level == network.NotificationLevelError {
			fmt.Printf("!! %s\n", n.Text)
			continue
		}
		fmt.Printf("** %s\n", n.Text)
	}
}

func displayName(name, yourName string) string {
	if name == yourName {
		return "You"
	}
	return name
}

func formatPrice(price gametypes.Price) string {
	entries := economy.OrderedEntries(economy.DropZeros(price))
	if len(entries) == 0 {
		return "free"
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%d %s", e.Amount, e.Color)
	}
	return strings.Join(parts, ", ")
}

func printBoard(stateManager state.StateManager, settings *state.BoardSettings) {
	snapshot := stateManager.Read()
	if !snapshot.Game.Began {
		fmt.Println("the game has not begun")
		return
	}

	var discount gametypes.Price
	if settings.ViewDiscountedPrices() {
		if you, ok := stateManager.YourPlayer(); ok {
			discount = economy.PlayerDiscount(&you, snapshot.Cards)
		}
	}

	tiers := make([]string, 0, len(snapshot.Game.Decks))
	for tier := range snapshot.Game.Decks {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)

	for _, tier := range tiers {
		deck := snapshot.Game.Decks[tier]
		fmt.Printf("tier %s (%d hidden):\n", tier, deck.HiddenCount)
		for _, cardID := range deck.Visible {
			card, ok := snapshot.Cards[cardID]
			if !ok {
				fmt.Printf("  #%d\n", cardID)
				continue
			}
			price := card.Price
			if discount != nil {
				price = economy.PriceAfterDiscount(price, discount)
			}
			affordable := ""
			if you, ok := stateManager.YourPlayer(); ok {
				youDiscount := economy.PlayerDiscount(&you, snapshot.Cards)
				if economy.CanAfford(&you, economy.PriceAfterDiscount(card.Price, youDiscount)) {
					affordable = " *"
				}
			}
			fmt.Printf("  #%d %s: +1 %s, %d pts, costs %s%s\n",
				card.ID, card.Art, card.Discount, card.Score, formatPrice(price), affordable)
		}
	}

	fmt.Println("nobles:")
	for _, nobleID := range snapshot.Game.CollectionsInPlay {
		noble, ok := snapshot.Collections[nobleID]
		if !ok {
			fmt.Printf("  #%d\n", nobleID)
			continue
		}
		fmt.Printf("  #%d %s: %d pts, needs %s\n", nobleID, noble.Art, noble.Score, formatPrice(noble.Trigger))
	}

	fmt.Printf("bank: %s\n", formatPrice(snapshot.Game.Bank.AsPrice()))
}

func printPlayers(stateManager state.StateManager) {
	snapshot := stateManager.Read()
	yourName, _ := stateManager.Identity()
	active, hasActive := stateManager.ActivePlayer()

	for _, name := range snapshot.Game.Players.Order {
		player, _ := snapshot.Game.Players.Get(name)
		marker := "  "
		if hasActive && name == active.Name {
			marker = "> "
		}
		score := economy.TotalScore(&player, snapshot.Cards, snapshot.Collections)
		fmt.Printf("%s%s: %d pts, %d developments, %d reserved, %s\n",
			marker, displayName(name, yourName), score,
			len(player.Developments), len(player.Reservations),
			formatPrice(player.Wallet.AsPrice()))
	}
}

func printWallet(stateManager state.StateManager) {
	snapshot := stateManager.Read()
	you, ok := stateManager.YourPlayer()
	if !ok {
		fmt.Println("you are not seated yet")
		return
	}
	fmt.Printf("tokens: %s\n", formatPrice(you.Wallet.AsPrice()))
	fmt.Printf("discounts: %s\n", formatPrice(economy.PlayerDiscount(&you, snapshot.Cards)))
	fmt.Printf("score: %d\n", economy.TotalScore(&you, snapshot.Cards, snapshot.Collections))
}
