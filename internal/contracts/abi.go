package contracts

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const registryABIJSON = `[
  {
    "inputs": [
      {"internalType": "string", "name": "name", "type": "string"},
      {"internalType": "string", "name": "description", "type": "string"},
      {"internalType": "string", "name": "mission", "type": "string"}
    ],
    "name": "createOrganization",
    "outputs": [{"internalType": "address", "name": "", "type": "address"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "getOrganizationCount",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "uint256", "name": "index", "type": "uint256"}],
    "name": "getOrganizationAddressByIndex",
    "outputs": [{"internalType": "address", "name": "", "type": "address"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "address", "name": "", "type": "address"}],
    "name": "organizations",
    "outputs": [
      {"internalType": "string", "name": "name", "type": "string"},
      {"internalType": "string", "name": "description", "type": "string"},
      {"internalType": "string", "name": "mission", "type": "string"},
      {"internalType": "uint256", "name": "creationDate", "type": "uint256"},
      {"internalType": "address", "name": "admin", "type": "address"}
    ],
    "stateMutability": "view",
    "type": "function"
  }
]`

const organizationABIJSON = `[
  {
    "inputs": [],
    "name": "name",
    "outputs": [{"internalType": "string", "name": "", "type": "string"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "description",
    "outputs": [{"internalType": "string", "name": "", "type": "string"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "mission",
    "outputs": [{"internalType": "string", "name": "", "type": "string"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "creationDate",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "owner",
    "outputs": [{"internalType": "address", "name": "", "type": "address"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "getMemberCount",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "name": "memberArray",
    "outputs": [{"internalType": "address", "name": "", "type": "address"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "address", "name": "account", "type": "address"}],
    "name": "isMember",
    "outputs": [{"internalType": "bool", "name": "", "type": "bool"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "address", "name": "account", "type": "address"}],
    "name": "isTreasurer",
    "outputs": [{"internalType": "bool", "name": "", "type": "bool"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "address", "name": "member", "type": "address"}],
    "name": "addMember",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "address", "name": "treasurer", "type": "address"}],
    "name": "addTreasurer",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]`

const fundingPoolABIJSON = `[
  {
    "inputs": [
      {"internalType": "string", "name": "name", "type": "string"},
      {"internalType": "string", "name": "description", "type": "string"},
      {"internalType": "uint256", "name": "goal", "type": "uint256"},
      {"internalType": "uint256", "name": "deadline", "type": "uint256"},
      {"internalType": "uint8", "name": "fundingType", "type": "uint8"},
      {"internalType": "string[]", "name": "expenseItems", "type": "string[]"},
      {"internalType": "uint256[]", "name": "expenseAmounts", "type": "uint256[]"}
    ],
    "name": "createCampaign",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "uint256", "name": "campaignId", "type": "uint256"}],
    "name": "contribute",
    "outputs": [],
    "stateMutability": "payable",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "campaignCount",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "uint256", "name": "campaignId", "type": "uint256"}],
    "name": "getCampaignDetails",
    "outputs": [
      {"internalType": "string", "name": "name", "type": "string"},
      {"internalType": "string", "name": "description", "type": "string"},
      {"internalType": "uint256", "name": "goal", "type": "uint256"},
      {"internalType": "uint256", "name": "collected", "type": "uint256"},
      {"internalType": "uint256", "name": "deadline", "type": "uint256"},
      {"internalType": "uint8", "name": "fundingType", "type": "uint8"},
      {"internalType": "uint8", "name": "status", "type": "uint8"}
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "name": "campaigns",
    "outputs": [
      {"internalType": "string", "name": "name", "type": "string"},
      {"internalType": "string", "name": "description", "type": "string"},
      {"internalType": "uint256", "name": "goal", "type": "uint256"},
      {"internalType": "uint256", "name": "collected", "type": "uint256"},
      {"internalType": "uint256", "name": "deadline", "type": "uint256"},
      {"internalType": "uint8", "name": "fundingType", "type": "uint8"},
      {"internalType": "uint8", "name": "status", "type": "uint8"},
      {"internalType": "address", "name": "organization", "type": "address"}
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "uint256", "name": "campaignId", "type": "uint256"}],
    "name": "getExpenseItems",
    "outputs": [
      {"internalType": "string[]", "name": "", "type": "string[]"},
      {"internalType": "uint256[]", "name": "", "type": "uint256[]"}
    ],
    "stateMutability": "view",
    "type": "function"
  }
]`

const expenseLedgerABIJSON = `[
  {
    "inputs": [
      {"internalType": "string", "name": "description", "type": "string"},
      {"internalType": "uint256", "name": "amount", "type": "uint256"},
      {"internalType": "string", "name": "receiptURI", "type": "string"},
      {"internalType": "uint256", "name": "campaignId", "type": "uint256"},
      {"internalType": "uint256", "name": "requiredApprovals", "type": "uint256"}
    ],
    "name": "submitExpense",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "uint256", "name": "expenseId", "type": "uint256"}],
    "name": "approveExpense",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "uint256", "name": "expenseId", "type": "uint256"}],
    "name": "rejectExpense",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256", "name": "expenseId", "type": "uint256"},
      {"internalType": "address", "name": "recipient", "type": "address"}
    ],
    "name": "reimburseExpense",
    "outputs": [],
    "stateMutability": "payable",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "expenseCount",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "uint256", "name": "expenseId", "type": "uint256"}],
    "name": "getExpenseDetails",
    "outputs": [
      {"internalType": "string", "name": "description", "type": "string"},
      {"internalType": "uint256", "name": "amount", "type": "uint256"},
      {"internalType": "string", "name": "receiptURI", "type": "string"},
      {"internalType": "address", "name": "requester", "type": "address"},
      {"internalType": "uint256", "name": "campaignId", "type": "uint256"},
      {"internalType": "uint8", "name": "status", "type": "uint8"},
      {"internalType": "uint256", "name": "submissionDate", "type": "uint256"},
      {"internalType": "uint256", "name": "requiredApprovals", "type": "uint256"},
      {"internalType": "uint256", "name": "approvalCount", "type": "uint256"}
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256", "name": "expenseId", "type": "uint256"},
      {"internalType": "address", "name": "approver", "type": "address"}
    ],
    "name": "hasApproved",
    "outputs": [{"internalType": "bool", "name": "", "type": "bool"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": false, "internalType": "uint256", "name": "expenseId", "type": "uint256"},
      {"indexed": false, "internalType": "address", "name": "approver", "type": "address"}
    ],
    "name": "ExpenseApproved",
    "type": "event"
  }
]`

var (
	registryABI     abi.ABI
	registryABIOnce sync.Once
	registryABIErr  error

	organizationABI     abi.ABI
	organizationABIOnce sync.Once
	organizationABIErr  error

	fundingPoolABI     abi.ABI
	fundingPoolABIOnce sync.Once
	fundingPoolABIErr  error

	expenseLedgerABI     abi.ABI
	expenseLedgerABIOnce sync.Once
	expenseLedgerABIErr  error
)

// RegistryABI returns the parsed organization registry ABI.
func RegistryABI() (abi.ABI, error) {
	registryABIOnce.Do(func() {
		registryABI, registryABIErr = abi.JSON(strings.NewReader(registryABIJSON))
	})
	return registryABI, registryABIErr
}

// OrganizationABI returns the parsed organization instance ABI.
func OrganizationABI() (abi.ABI, error) {
	organizationABIOnce.Do(func() {
		organizationABI, organizationABIErr = abi.JSON(strings.NewReader(organizationABIJSON))
	})
	return organizationABI, organizationABIErr
}

// FundingPoolABI returns the parsed funding pool ABI.
func FundingPoolABI() (abi.ABI, error) {
	fundingPoolABIOnce.Do(func() {
		fundingPoolABI, fundingPoolABIErr = abi.JSON(strings.NewReader(fundingPoolABIJSON))
	})
	return fundingPoolABI, fundingPoolABIErr
}

// ExpenseLedgerABI returns the parsed expense ledger ABI.
func ExpenseLedgerABI() (abi.ABI, error) {
	expenseLedgerABIOnce.Do(func() {
		expenseLedgerABI, expenseLedgerABIErr = abi.JSON(strings.NewReader(expenseLedgerABIJSON))
	})
	return expenseLedgerABI, expenseLedgerABIErr
}
