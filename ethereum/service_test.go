package ethereum

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/AlexZinkM/eth-wallet/internal/client"
	"github.com/AlexZinkM/eth-wallet/internal/client/clienttest"
	"github.com/AlexZinkM/eth-wallet/internal/crypto"
	"github.com/AlexZinkM/eth-wallet/internal/store"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testEndpoint = "https://node.test"

var oneEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

type fixture struct {
	svc     *Service
	node    *clienttest.Node
	network *clienttest.Network
	store   *store.Memory
	cipher  *crypto.KeyCipher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	cipher, err := crypto.New(key)
	require.NoError(t, err)

	node := clienttest.NewNode()
	network := clienttest.NewNetwork()
	network.Live(testEndpoint, node)

	selector := client.NewSelector([]string{testEndpoint}, "", client.WithDialer(network.Dial))
	st := store.NewMemory()

	return &fixture{
		svc:     NewService(st, cipher, selector, zap.NewNop(), Config{}),
		node:    node,
		network: network,
		store:   st,
		cipher:  cipher,
	}
}

type account struct {
	key     *ecdsa.PrivateKey
	keyHex  string
	address ethcommon.Address
}

func newAccount(t *testing.T) account {
	t.Helper()
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	return account{
		key:     key,
		keyHex:  hexutil.Encode(ethcrypto.FromECDSA(key)),
		address: ethcrypto.PubkeyToAddress(key.PublicKey),
	}
}

// signedTx returns a chain-1 legacy transfer from acc. A nil to is a contract creation.
func signedTx(t *testing.T, acc account, to *ethcommon.Address, nonce uint64, value *big.Int) *types.Transaction {
	t.Helper()
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       to,
		Value:    value,
		Gas:      21000,
		GasPrice: big.NewInt(1_000_000_000),
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(big.NewInt(1)), acc.key)
	require.NoError(t, err)
	return signed
}

func ether(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return new(big.Int).Mul(v, oneEther)
}
