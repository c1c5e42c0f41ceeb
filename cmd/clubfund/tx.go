package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"clubfund/internal/txbuild"
)

// The tx commands only prepare unsigned call descriptions; signing and
// broadcasting belong to the external submission pipeline.
func newTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Build unsigned transaction call descriptions",
	}

	createOrg := &cobra.Command{
		Use:   "create-org",
		Short: "Register a new organization",
		RunE: withBuilder(func(b *txbuild.Builder, cmd *cobra.Command) ([]txbuild.Call, error) {
			name, _ := cmd.Flags().GetString("name")
			description, _ := cmd.Flags().GetString("description")
			mission, _ := cmd.Flags().GetString("mission")
			return b.CreateOrganization(name, description, mission)
		}),
	}
	createOrg.Flags().String("name", "", "organization name")
	createOrg.Flags().String("description", "", "organization description")
	createOrg.Flags().String("mission", "", "organization mission")
	cmd.AddCommand(createOrg)

	addMember := &cobra.Command{
		Use:   "add-member",
		Short: "Add a member to an organization",
		RunE: withBuilder(func(b *txbuild.Builder, cmd *cobra.Command) ([]txbuild.Call, error) {
			org, err := addressFlag(cmd, "org")
			if err != nil {
				return nil, err
			}
			member, _ := cmd.Flags().GetString("member")
			return b.AddMember(org, member)
		}),
	}
	addMember.Flags().String("org", "", "organization address")
	addMember.Flags().String("member", "", "member address")
	cmd.AddCommand(addMember)

	addTreasurer := &cobra.Command{
		Use:   "add-treasurer",
		Short: "Flag an organization member as treasurer",
		RunE: withBuilder(func(b *txbuild.Builder, cmd *cobra.Command) ([]txbuild.Call, error) {
			org, err := addressFlag(cmd, "org")
			if err != nil {
				return nil, err
			}
			treasurer, _ := cmd.Flags().GetString("treasurer")
			return b.AddTreasurer(org, treasurer)
		}),
	}
	addTreasurer.Flags().String("org", "", "organization address")
	addTreasurer.Flags().String("treasurer", "", "treasurer address")
	cmd.AddCommand(addTreasurer)

	createCampaign := &cobra.Command{
		Use:   "create-campaign",
		Short: "Open a funding campaign",
		RunE: withBuilder(func(b *txbuild.Builder, cmd *cobra.Command) ([]txbuild.Call, error) {
			form := txbuild.CampaignForm{}
			form.Name, _ = cmd.Flags().GetString("name")
			form.Description, _ = cmd.Flags().GetString("description")
			form.Goal, _ = cmd.Flags().GetString("goal")
			form.Deadline, _ = cmd.Flags().GetUint64("deadline")
			fundingType, _ := cmd.Flags().GetUint8("funding-type")
			form.FundingType = fundingType

			labels, _ := cmd.Flags().GetStringSlice("item")
			amounts, _ := cmd.Flags().GetStringSlice("item-amount")
			if len(labels) != len(amounts) {
				return nil, fmt.Errorf("item and item-amount flags must pair up")
			}
			for i := range labels {
				form.Items = append(form.Items, txbuild.BudgetItem{Label: labels[i], Amount: amounts[i]})
			}
			return b.CreateCampaign(form)
		}),
	}
	createCampaign.Flags().String("name", "", "campaign name")
	createCampaign.Flags().String("description", "", "campaign description")
	createCampaign.Flags().String("goal", "", "goal in decimal dollars")
	createCampaign.Flags().Uint64("deadline", 0, "deadline as unix seconds, 0 for none")
	createCampaign.Flags().Uint8("funding-type", 0, "funding type ordinal (0 general, 1 event, 2 travel)")
	createCampaign.Flags().StringSlice("item", nil, "budget item labels")
	createCampaign.Flags().StringSlice("item-amount", nil, "budget item amounts in decimal dollars")
	cmd.AddCommand(createCampaign)

	contribute := &cobra.Command{
		Use:   "contribute",
		Short: "Contribute native tokens to a campaign",
		RunE: withBuilder(func(b *txbuild.Builder, cmd *cobra.Command) ([]txbuild.Call, error) {
			campaign, _ := cmd.Flags().GetUint64("campaign")
			amount, _ := cmd.Flags().GetString("amount")
			return b.Contribute(campaign, amount)
		}),
	}
	contribute.Flags().Uint64("campaign", 0, "campaign id")
	contribute.Flags().String("amount", "", "contribution in decimal native tokens")
	cmd.AddCommand(contribute)

	submitExpense := &cobra.Command{
		Use:   "submit-expense",
		Short: "Submit an expense against a campaign",
		RunE: withBuilder(func(b *txbuild.Builder, cmd *cobra.Command) ([]txbuild.Call, error) {
			form := txbuild.ExpenseForm{}
			form.Description, _ = cmd.Flags().GetString("description")
			form.Amount, _ = cmd.Flags().GetString("amount")
			form.ReceiptURI, _ = cmd.Flags().GetString("receipt")
			form.CampaignID, _ = cmd.Flags().GetString("campaign")
			form.RequiredApprovals, _ = cmd.Flags().GetUint64("required-approvals")
			return b.SubmitExpense(form)
		}),
	}
	submitExpense.Flags().String("description", "", "expense description")
	submitExpense.Flags().String("amount", "", "amount in decimal dollars")
	submitExpense.Flags().String("receipt", "", "receipt URI, ipfs:// supported")
	submitExpense.Flags().String("campaign", "", "campaign id")
	submitExpense.Flags().Uint64("required-approvals", 1, "approvals required before reimbursement")
	cmd.AddCommand(submitExpense)

	approve := &cobra.Command{
		Use:   "approve",
		Short: "Approve an expense",
		RunE: withBuilder(func(b *txbuild.Builder, cmd *cobra.Command) ([]txbuild.Call, error) {
			id, _ := cmd.Flags().GetUint64("expense")
			return b.ApproveExpense(id)
		}),
	}
	approve.Flags().Uint64("expense", 0, "expense id")
	cmd.AddCommand(approve)

	reject := &cobra.Command{
		Use:   "reject",
		Short: "Reject an expense",
		RunE: withBuilder(func(b *txbuild.Builder, cmd *cobra.Command) ([]txbuild.Call, error) {
			id, _ := cmd.Flags().GetUint64("expense")
			return b.RejectExpense(id)
		}),
	}
	reject.Flags().Uint64("expense", 0, "expense id")
	cmd.AddCommand(reject)

	reimburse := &cobra.Command{
		Use:   "reimburse",
		Short: "Reimburse an approved expense",
		RunE: withBuilder(func(b *txbuild.Builder, cmd *cobra.Command) ([]txbuild.Call, error) {
			id, _ := cmd.Flags().GetUint64("expense")
			recipient, _ := cmd.Flags().GetString("recipient")
			amount, _ := cmd.Flags().GetString("amount")
			return b.ReimburseExpense(id, recipient, amount)
		}),
	}
	reimburse.Flags().Uint64("expense", 0, "expense id")
	reimburse.Flags().String("recipient", "", "recipient address")
	reimburse.Flags().String("amount", "", "reimbursement in decimal native tokens")
	cmd.AddCommand(reimburse)

	return cmd
}

func withBuilder(build func(*txbuild.Builder, *cobra.Command) ([]txbuild.Call, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		contractCfg, err := contractConfig(cfg)
		if err != nil {
			return err
		}

		builder, err := txbuild.NewBuilder(contractCfg)
		if err != nil {
			return err
		}

		calls, err := build(builder, cmd)
		if err != nil {
			return err
		}
		if len(calls) == 0 {
			return fmt.Errorf("form incomplete: nothing to submit")
		}
		return printJSON(calls)
	}
}

func addressFlag(cmd *cobra.Command, name string) (common.Address, error) {
	value, _ := cmd.Flags().GetString(name)
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("--%s is not a valid address: %q", name, value)
	}
	return common.HexToAddress(value), nil
}
