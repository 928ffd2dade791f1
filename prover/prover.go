package prover

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/derivlab/go-deriv/dfa"
)

// Prover manages machine circuit compilation, setup, and proof generation.
type Prover struct {
	mu       sync.RWMutex
	machines map[string]*CompiledMachine
	curve    ecc.ID
}

// CompiledMachine holds a machine's compiled circuit and keys.
type CompiledMachine struct {
	Name         string
	Machine      *dfa.Machine
	MaxLen       int
	CS           constraint.ConstraintSystem
	ProvingKey   groth16.ProvingKey
	VerifyingKey groth16.VerifyingKey
	Constraints  int

	table *machineTable
}

// RunProof is a zero-knowledge proof that some private input string,
// when fed to the named machine, ends in a state whose acceptance
// matches Accepted. The input itself is never revealed.
type RunProof struct {
	MachineName string
	Accepted    bool
	Fingerprint *big.Int
	Proof       groth16.Proof
	Public      witness.Witness
}

// NewProver creates a new prover instance.
func NewProver() *Prover {
	return &Prover{
		machines: make(map[string]*CompiledMachine),
		curve:    ecc.BN254,
	}
}

// RegisterMachine compiles a run circuit of capacity maxLen for the
// machine and runs trusted setup. Registration is expensive; proofs
// against a registered machine are cheap by comparison.
func (p *Prover) RegisterMachine(name string, m *dfa.Machine, maxLen int) error {
	if maxLen <= 0 {
		return fmt.Errorf("maxLen must be positive, got %d", maxLen)
	}
	table, err := newMachineTable(m, p.curve.ScalarField())
	if err != nil {
		return fmt.Errorf("machine %q: %w", name, err)
	}

	circuit := &RunCircuit{
		Symbols: make([]frontend.Variable, maxLen),
		table:   table,
	}
	cs, err := frontend.Compile(p.curve.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return fmt.Errorf("circuit compilation failed: %w", err)
	}

	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.machines[name] = &CompiledMachine{
		Name:         name,
		Machine:      m,
		MaxLen:       maxLen,
		CS:           cs,
		ProvingKey:   pk,
		VerifyingKey: vk,
		Constraints:  cs.GetNbConstraints(),
		table:        table,
	}
	return nil
}

// GetMachine returns a compiled machine by name.
func (p *Prover) GetMachine(name string) (*CompiledMachine, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cm, ok := p.machines[name]
	return cm, ok
}

// ListMachines returns all registered machine names.
func (p *Prover) ListMachines() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.machines))
	for name := range p.machines {
		names = append(names, name)
	}
	return names
}

// ProveRun generates a Groth16 proof that input drives the named
// machine to its actual verdict. The verdict is computed outside the
// circuit first; inputs the machine cannot consume are rejected here
// with the same error the executor reports.
func (p *Prover) ProveRun(name, input string) (*RunProof, error) {
	p.mu.RLock()
	cm, ok := p.machines[name]
	p.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("machine %q not registered", name)
	}

	accepted, err := cm.Machine.Accepts(input)
	if err != nil {
		return nil, fmt.Errorf("machine %q cannot run input: %w", name, err)
	}
	symbols, err := cm.table.encode(input, cm.MaxLen)
	if err != nil {
		return nil, fmt.Errorf("machine %q: %w", name, err)
	}

	assignment := &RunCircuit{
		Symbols:     make([]frontend.Variable, cm.MaxLen),
		Accepted:    boolToInt(accepted),
		Fingerprint: cm.table.fingerprint,
	}
	for i, s := range symbols {
		assignment.Symbols[i] = s
	}

	w, err := frontend.NewWitness(assignment, p.curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("witness creation failed: %w", err)
	}
	proof, err := groth16.Prove(cm.CS, cm.ProvingKey, w)
	if err != nil {
		return nil, fmt.Errorf("proof generation failed: %w", err)
	}
	public, err := w.Public()
	if err != nil {
		return nil, fmt.Errorf("public witness extraction failed: %w", err)
	}

	return &RunProof{
		MachineName: name,
		Accepted:    accepted,
		Fingerprint: new(big.Int).Set(cm.table.fingerprint),
		Proof:       proof,
		Public:      public,
	}, nil
}

// VerifyRun checks a proof against the named machine's verifying key.
// A valid proof certifies that whoever produced it knows an input on
// which the fingerprinted machine reaches the claimed verdict.
func (p *Prover) VerifyRun(name string, proof *RunProof) error {
	p.mu.RLock()
	cm, ok := p.machines[name]
	p.mu.RUnlock()

	if !ok {
		return fmt.Errorf("machine %q not registered", name)
	}
	if proof.Fingerprint.Cmp(cm.table.fingerprint) != 0 {
		return fmt.Errorf("proof fingerprint does not match machine %q", name)
	}
	return groth16.Verify(proof.Proof, cm.VerifyingKey, proof.Public)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
