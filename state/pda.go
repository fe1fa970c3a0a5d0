package state

import (
	"encoding/binary"

	solanago "github.com/gagliardetto/solana-go"
)

// ProgramID anchors all record address derivations.
var ProgramID = solanago.MustPublicKeyFromBase58("5AWQHT1RLaHbTiwcsPouTrTaVSA2XGyFHc8iTNp6Ruzu")

func DeriveConfigAddress() solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{[]byte("config")}, ProgramID)
	return pub
}

func DeriveLaunchAddress(creator solanago.PublicKey, launchID uint64) solanago.PublicKey {
	idBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(idBytes, launchID)
	pub, _, _ := solanago.FindProgramAddress([][]byte{[]byte("launch"), creator.Bytes(), idBytes}, ProgramID)
	return pub
}

func DerivePositionAddress(launch, user solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{[]byte("position"), launch.Bytes(), user.Bytes()}, ProgramID)
	return pub
}

func DeriveCreatorStatsAddress(creator solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{[]byte("creator_stats"), creator.Bytes()}, ProgramID)
	return pub
}

func DeriveVaultAddress(launch solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{[]byte("vault"), launch.Bytes()}, ProgramID)
	return pub
}
